package usecase

import (
	"context"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// CatalogUsecase は商品の公開閲覧と管理者によるカタログ操作です。
type CatalogUsecase struct {
	productRepo repo.ProductRepository
}

func NewCatalogUsecase(productRepo repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{productRepo: productRepo}
}

type ListItemsInput struct {
	Page  int
	Limit int
}

type ItemListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// 公開。認証不要
func (u *CatalogUsecase) ListItems(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if in.Page < 1 {
		return ItemListOutput{}, NewError(KindValidation, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ItemListOutput{}, NewError(KindValidation, "invalid limit")
	}

	items, total, err := u.productRepo.List(ctx, in.Page, in.Limit)
	if err != nil {
		return ItemListOutput{}, NewError(KindInternal, "db error")
	}

	return ItemListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// 公開。認証不要
func (u *CatalogUsecase) GetItem(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewError(KindValidation, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewError(KindInternal, "db error")
	}
	return p, nil
}

type SaveItemInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int64
	ImageURL    string
}

func (u *CatalogUsecase) CreateItem(ctx context.Context, actor Actor, in SaveItemInput) (model.Product, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.Product{}, err
	}
	if err := validateSaveItem(in); err != nil {
		return model.Product{}, err
	}

	//画像URLが空ならデフォルトを入れる
	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = model.DefaultProductImageURL
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, NewError(KindInternal, "db error")
	}
	return p, nil
}

func (u *CatalogUsecase) UpdateItem(ctx context.Context, actor Actor, productID int64, in SaveItemInput) error {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	if productID <= 0 {
		return NewError(KindValidation, "invalid product id")
	}
	if err := validateSaveItem(in); err != nil {
		return err
	}

	cur, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = cur.ImageURL
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    imageURL,
		UpdatedAt:   time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}
	return nil
}

func validateSaveItem(in SaveItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewError(KindValidation, "name required")
	}
	if in.Price < 0 {
		return NewError(KindValidation, "price must be >= 0")
	}
	if in.Stock < 0 {
		return NewError(KindValidation, "stock must be >= 0")
	}
	return nil
}
