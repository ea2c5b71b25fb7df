package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetUserEventQueues возвращает очереди для событий жизненного цикла пользователей.
func GetUserEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "user.registered", RoutingKey: "registered"},
	}
}
