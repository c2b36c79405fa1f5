package usecase

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// AdminUserUsecase は管理者によるユーザー操作です。
// 販売者アカウントはここで役割を付け替えて作る
type AdminUserUsecase struct {
	userRepo repo.UserRepository
}

func NewAdminUserUsecase(userRepo repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{userRepo: userRepo}
}

func (u *AdminUserUsecase) UpdateUserRole(ctx context.Context, actor Actor, userID int64, role string) error {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	if userID <= 0 {
		return NewError(KindValidation, "invalid id")
	}
	if !model.ValidRole(role) {
		return NewError(KindValidation, "invalid role")
	}

	err := u.userRepo.UpdateRole(ctx, userID, model.Role(role))
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "user not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}
	return nil
}

// 退会。カート・欲しいものリストの後始末はrepo側が同じTxで行う
func (u *AdminUserUsecase) DeleteUser(ctx context.Context, actor Actor, userID int64) error {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	if userID <= 0 {
		return NewError(KindValidation, "invalid id")
	}

	err := u.userRepo.Delete(ctx, userID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "user not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}
	return nil
}
