package register

import (
	"context"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	CreateUser(ctx context.Context, cand models.Candidate) (*models.User, error)
}
