package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 同一商品はプラス
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// チェックアウトでそのユーザーの明細を全削除
	DeleteByUserID(ctx context.Context, userID int64) error
}
