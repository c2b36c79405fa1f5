package usecase

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 在庫チェックはここでは行わない。在庫は注文側でまとめて検証する
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// price は現在の商品価格。価格が固定されるのは注文明細だけ
type CartLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカート取得。
func (u *CartUsecase) GetCart(ctx context.Context, actor Actor) (CartResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return CartResponse{}, err
	}

	return u.buildCartResponse(ctx, actor.UserID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, actor Actor, in AddCartInput) (CartResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return CartResponse{}, err
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewError(KindValidation, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewError(KindValidation, "invalid quantity")
	}

	// 商品チェック
	_, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewError(KindInternal, "db error")
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertByUserAndProduct(ctx, actor.UserID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewError(KindInternal, "db error")
	}

	return u.buildCartResponse(ctx, actor.UserID)
}

// 明細削除（所有チェックあり）
func (u *CartUsecase) RemoveFromCart(ctx context.Context, actor Actor, cartItemID int64) (CartResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return CartResponse{}, err
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewError(KindValidation, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewError(KindNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewError(KindInternal, "db error")
	}

	//他人の明細は消させない
	if item.UserID != actor.UserID {
		return CartResponse{}, NewError(KindNotOwner, "cart item belongs to another user")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewError(KindNotFound, "cart item not found")
		}
		return CartResponse{}, NewError(KindInternal, "db error")
	}

	return u.buildCartResponse(ctx, actor.UserID)
}

// ユーザーの明細をまとめてCartResponseを作る。合計は現在価格×数量
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewError(KindInternal, "db error")
	}

	respItems := make([]CartLineResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		respItems = append(respItems, CartLineResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})

		total += p.Price * it.Quantity
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
