package usecase

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// AdminOrderUsecase は管理者向けの注文一覧です。
// ステータスの手動変更は現状提供しない（SHIPPED以降は予約値）
type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

func (u *AdminOrderUsecase) ListAllOrders(ctx context.Context, actor Actor, f repo.OrderListFilter) ([]OrderOutput, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return []OrderOutput{}, err
	}
	if f.Page < 1 {
		return []OrderOutput{}, NewError(KindValidation, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewError(KindValidation, "invalid limit")
	}
	if f.Status != "" && !model.ValidOrderStatus(f.Status) {
		return []OrderOutput{}, NewError(KindValidation, "invalid status")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().List(ctx, f)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewError(KindInternal, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}
