package repository

import (
	"context"
	"time"

	"shop/internal/domain/model"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//現在のstatusがfromのときだけtoへ更新する。二重確定はここで弾く
	UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error)

	//絞り込み付き一覧（販売者・管理者用）
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
}
