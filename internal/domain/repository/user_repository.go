package repository

import (
	"context"

	"velora/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListAccounts(ctx context.Context, userID string) ([]entity.Account, error)
}
