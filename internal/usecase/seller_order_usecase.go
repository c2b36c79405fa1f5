package usecase

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// SellerOrderUsecase は販売者側の注文操作です。
// 在庫が恒久的に減るのはここの支払い確定だけ
type SellerOrderUsecase struct {
	tx repo.TransactionManager
}

func NewSellerOrderUsecase(tx repo.TransactionManager) *SellerOrderUsecase {
	return &SellerOrderUsecase{tx: tx}
}

// 支払い待ちの注文一覧
func (u *SellerOrderUsecase) ListPendingOrders(ctx context.Context, actor Actor, page int, limit int) ([]OrderOutput, error) {
	if err := requireRole(actor, model.RoleSeller); err != nil {
		return []OrderOutput{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().List(ctx, repo.OrderListFilter{
			Page:   page,
			Limit:  limit,
			Status: string(model.OrderStatusAwaitingPayment),
		})
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

// ConfirmPayment は支払いを確定する。
// 全明細の在庫を現在値で再検証して減算し、PAIDへ更新する。
// 1件でも足りなければ何も減らさずに失敗する（Txのrollbackで全部戻る）
func (u *SellerOrderUsecase) ConfirmPayment(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if err := requireRole(actor, model.RoleSeller); err != nil {
		return OrderOutput{}, err
	}
	if orderID <= 0 {
		return OrderOutput{}, NewError(KindValidation, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		if o.Status != model.OrderStatusAwaitingPayment {
			return NewError(KindInvalidState, "not awaiting payment")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		//作成時から在庫が動いているかもしれないので現在値で再検証して減算
		for _, it := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return NewError(KindInternal, "db error")
			}
			if !ok {
				var available int64 = 0
				if p, perr := r.Products().FindByID(ctx, it.ProductID); perr == nil {
					available = p.Stock
				}
				return NewInsufficientStockError(it.ProductID, it.Quantity, available)
			}
		}

		//statusの条件付き更新。別の確定とレースしたら負けた側はここで止まる
		ok, err := r.Orders().UpdateStatusIf(ctx, orderID, model.OrderStatusAwaitingPayment, model.OrderStatusPaid)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		if !ok {
			return NewError(KindInvalidState, "not awaiting payment")
		}

		o.Status = model.OrderStatusPaid
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
