package usecase

import (
	"context"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// OrderUsecase は購入者側の注文操作です。
// 在庫を減らすのは支払い確定側で、ここでは検証だけ行う
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// 配送先。全項目必須
type CheckoutInput struct {
	PostalCode   string
	Street       string
	Number       string
	Neighborhood string
	City         string
}

type OrderLineOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Status       string            `json:"status"`
	TotalPrice   int64             `json:"total_price"`
	PostalCode   string            `json:"postal_code"`
	Street       string            `json:"street"`
	Number       string            `json:"number"`
	Neighborhood string            `json:"neighborhood"`
	City         string            `json:"city"`
	CreatedAt    time.Time         `json:"created_at"`
	Items        []OrderLineOutput `json:"items"`
}

// Checkout はカートを注文へ変換する。
// 全明細の在庫を検証し、注文＋明細の作成とカート全削除を同一Txで行う。
// 在庫はここでは減らさない。減るのは支払い確定のときだけ
func (u *OrderUsecase) Checkout(ctx context.Context, actor Actor, in CheckoutInput) (OrderOutput, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return OrderOutput{}, err
	}
	if err := validateAddress(in); err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.CartItems().ListByUserID(ctx, actor.UserID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}
		if len(lines) == 0 {
			return NewError(KindEmptyCart, "cart is empty")
		}

		//全明細の在庫を検証。1件でも足りなければ注文は作らない
		orderItems := make([]model.OrderItem, 0, len(lines))
		var total int64 = 0
		now := time.Now()

		for _, line := range lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewError(KindNotFound, "product not found")
			}
			if err != nil {
				return NewError(KindInternal, "db error")
			}

			if p.Stock < line.Quantity {
				return NewInsufficientStockError(p.ID, line.Quantity, p.Stock)
			}

			//価格と商品名はこの時点で固定する
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           line.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            line.Quantity,
				CreatedAt:           now,
			})

			total += p.Price * line.Quantity
		}

		// 注文作成
		order := model.Order{
			UserID:       actor.UserID,
			Status:       model.OrderStatusAwaitingPayment,
			TotalPrice:   total,
			PostalCode:   strings.TrimSpace(in.PostalCode),
			Street:       strings.TrimSpace(in.Street),
			Number:       strings.TrimSpace(in.Number),
			Neighborhood: strings.TrimSpace(in.Neighborhood),
			City:         strings.TrimSpace(in.City),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewError(KindInternal, "db error")
		}

		//カートを空にする（同じTx内）
		if err := r.CartItems().DeleteByUserID(ctx, actor.UserID); err != nil {
			return NewError(KindInternal, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, actor Actor) ([]OrderOutput, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return []OrderOutput{}, err
	}

	//ページングはまずは固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, actor.UserID, 1, 50)
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

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
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
		if o.UserID != actor.UserID {
			//他人の注文は「存在しない扱い」にする
			return NewError(KindNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewError(KindInternal, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func validateAddress(in CheckoutInput) error {
	if strings.TrimSpace(in.PostalCode) == "" {
		return NewError(KindValidation, "postal_code required")
	}
	if strings.TrimSpace(in.Street) == "" {
		return NewError(KindValidation, "street required")
	}
	if strings.TrimSpace(in.Number) == "" {
		return NewError(KindValidation, "number required")
	}
	if strings.TrimSpace(in.Neighborhood) == "" {
		return NewError(KindValidation, "neighborhood required")
	}
	if strings.TrimSpace(in.City) == "" {
		return NewError(KindValidation, "city required")
	}
	return nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderLineOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderLineOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		TotalPrice:   o.TotalPrice,
		PostalCode:   o.PostalCode,
		Street:       o.Street,
		Number:       o.Number,
		Neighborhood: o.Neighborhood,
		City:         o.City,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
	}
}
