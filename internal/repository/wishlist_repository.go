package repository

import (
	"context"

	"shop/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	FindByID(ctx context.Context, wishlistItemID int64) (model.WishlistItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.WishlistItem, error)
	Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error)
	DeleteByID(ctx context.Context, wishlistItemID int64) error
}
