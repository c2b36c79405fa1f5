package repository

import (
	"context"

	"shop/internal/domain/model"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, t model.RefreshToken) error
	FindByTokenHash(ctx context.Context, hash string) (model.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
}
