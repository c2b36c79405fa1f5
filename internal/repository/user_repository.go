package repository

import (
	"context"

	"shop/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) error

	//退会。カートと欲しいものリストも同じTxで消す
	Delete(ctx context.Context, userID int64) error
}
