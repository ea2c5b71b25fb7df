package login

import (
	"context"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// Service определяет контракт бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}
