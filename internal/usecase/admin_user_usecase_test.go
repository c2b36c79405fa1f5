package usecase

import (
	"context"
	"testing"

	"shop/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRole_Success(t *testing.T) {
	s := newMemStore()
	u := s.seedUser("taro", "taro@example.com", model.RoleCustomer)

	uc := NewAdminUserUsecase(&memUserRepo{s: s})
	admin := Actor{UserID: 99, Role: model.RoleAdmin}

	err := uc.UpdateUserRole(context.Background(), admin, u.ID, string(model.RoleSeller))
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, s.users[u.ID].Role)
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	s := newMemStore()
	u := s.seedUser("taro", "taro@example.com", model.RoleCustomer)

	uc := NewAdminUserUsecase(&memUserRepo{s: s})
	admin := Actor{UserID: 99, Role: model.RoleAdmin}

	err := uc.UpdateUserRole(context.Background(), admin, u.ID, "SUPERUSER")
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, ue.Kind)
	assert.Equal(t, model.RoleCustomer, s.users[u.ID].Role)
}

func TestUpdateUserRole_UserNotFound(t *testing.T) {
	s := newMemStore()
	uc := NewAdminUserUsecase(&memUserRepo{s: s})

	err := uc.UpdateUserRole(context.Background(), Actor{UserID: 99, Role: model.RoleAdmin}, 123, string(model.RoleSeller))
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ue.Kind)
}

func TestDeleteUser_ClearsCartAndWishlist(t *testing.T) {
	s := newMemStore()
	u := s.seedUser("taro", "taro@example.com", model.RoleCustomer)
	p := s.seedProduct("widget", 1000, 10)
	s.seedCartItem(u.ID, p.ID, 1)
	s.seedWishlistItem(u.ID, p.ID)

	uc := NewAdminUserUsecase(&memUserRepo{s: s})
	admin := Actor{UserID: 99, Role: model.RoleAdmin}

	err := uc.DeleteUser(context.Background(), admin, u.ID)
	require.NoError(t, err)

	assert.NotContains(t, s.users, u.ID)
	assert.Empty(t, s.cartItems)
	assert.Empty(t, s.wishlist)
}

func TestAdminUser_AdminOnly(t *testing.T) {
	s := newMemStore()
	u := s.seedUser("taro", "taro@example.com", model.RoleCustomer)

	uc := NewAdminUserUsecase(&memUserRepo{s: s})

	err := uc.DeleteUser(context.Background(), Actor{UserID: 1, Role: model.RoleSeller}, u.ID)
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, ue.Kind)
	assert.Contains(t, s.users, u.ID)
}
