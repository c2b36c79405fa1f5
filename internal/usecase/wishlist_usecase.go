package usecase

import (
	"context"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// WishlistUsecase は /wishlist の業務ロジックです。
// カート・注文とは独立したライフサイクル
type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(
	wishlistRepo repo.WishlistRepository,
	productRepo repo.ProductRepository,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
}

// already は同一商品がすでに入っていたかどうか
type WishlistResponse struct {
	Items   []WishlistLineResponse `json:"items"`
	Already bool                   `json:"already,omitempty"`
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, actor Actor) (WishlistResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return WishlistResponse{}, err
	}

	return u.buildWishlistResponse(ctx, actor.UserID, false)
}

// AddToWishlist は追加。重複は作成せず already=true で返す
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, actor Actor, productID int64) (WishlistResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return WishlistResponse{}, err
	}
	if productID <= 0 {
		return WishlistResponse{}, NewError(KindValidation, "invalid product_id")
	}

	_, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return WishlistResponse{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	_, err = u.wishlistRepo.FindByUserAndProduct(ctx, actor.UserID, productID)
	if err == nil {
		//すでにある。何もしないで報告だけする
		return u.buildWishlistResponse(ctx, actor.UserID, true)
	}
	if err != repo.ErrNotFound {
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	if _, err := u.wishlistRepo.Create(ctx, model.WishlistItem{
		UserID:    actor.UserID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}); err != nil {
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	return u.buildWishlistResponse(ctx, actor.UserID, false)
}

// 削除（所有チェックあり）
func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, actor Actor, wishlistItemID int64) (WishlistResponse, error) {
	if err := requireRole(actor, model.RoleCustomer); err != nil {
		return WishlistResponse{}, err
	}
	if wishlistItemID <= 0 {
		return WishlistResponse{}, NewError(KindValidation, "invalid id")
	}

	item, err := u.wishlistRepo.FindByID(ctx, wishlistItemID)
	if err == repo.ErrNotFound {
		return WishlistResponse{}, NewError(KindNotFound, "wishlist item not found")
	}
	if err != nil {
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	if item.UserID != actor.UserID {
		return WishlistResponse{}, NewError(KindNotOwner, "wishlist item belongs to another user")
	}

	if err := u.wishlistRepo.DeleteByID(ctx, wishlistItemID); err != nil {
		if err == repo.ErrNotFound {
			return WishlistResponse{}, NewError(KindNotFound, "wishlist item not found")
		}
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	return u.buildWishlistResponse(ctx, actor.UserID, false)
}

func (u *WishlistUsecase) buildWishlistResponse(ctx context.Context, userID int64, already bool) (WishlistResponse, error) {
	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewError(KindInternal, "db error")
	}

	respItems := make([]WishlistLineResponse, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		respItems = append(respItems, WishlistLineResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		})
	}

	return WishlistResponse{Items: respItems, Already: already}, nil
}
