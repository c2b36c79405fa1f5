package usecase

import "shop/internal/domain/model"

// 認証済みの呼び出し元。識別はセッション側が済ませた前提で、ここでは検証しない
type Actor struct {
	UserID int64
	Role   model.Role
}

// 各操作の先頭で呼ぶ役割チェック。役割は一致のみ許可
func requireRole(actor Actor, required model.Role) error {
	if actor.UserID <= 0 {
		return NewError(KindForbidden, "login required")
	}
	if !actor.Role.Can(required) {
		switch required {
		case model.RoleAdmin:
			return NewError(KindForbidden, "admin only")
		case model.RoleSeller:
			return NewError(KindForbidden, "seller only")
		default:
			return NewError(KindForbidden, "customer only")
		}
	}
	return nil
}
