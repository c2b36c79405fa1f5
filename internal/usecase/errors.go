package usecase

import (
	"errors"
	"fmt"
)

// 操作の失敗はすべてこの型で返す。表示文言は受け手側で決める
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindNotOwner          ErrorKind = "NOT_OWNER"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindEmptyCart         ErrorKind = "EMPTY_CART"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindValidation        ErrorKind = "VALIDATION"
	KindInternal          ErrorKind = "INTERNAL"
)

// 在庫不足の内訳
type StockShortage struct {
	ProductID int64 `json:"product_id"`
	Requested int64 `json:"requested"`
	Available int64 `json:"available"`
}

type Error struct {
	Kind     ErrorKind
	Message  string
	Shortage *StockShortage
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func NewInsufficientStockError(productID int64, requested int64, available int64) error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %d", productID),
		Shortage: &StockShortage{
			ProductID: productID,
			Requested: requested,
			Available: available,
		},
	}
}

func AsError(err error) (*Error, bool) {
	var ue *Error
	ok := errors.As(err, &ue)
	return ue, ok
}
