package model

import "time"

type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaid            OrderStatus = "PAID"

	//以下は予約値。現状どの操作からも到達しない
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusAwaitingPayment, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64       `gorm:"not null;index" json:"user_id"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice int64       `gorm:"not null" json:"total_price"`

	//配送先。注文確定時に取り込んで以後変更しない
	PostalCode   string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Street       string `gorm:"type:varchar(200);not null" json:"street"`
	Number       string `gorm:"type:varchar(20);not null" json:"number"`
	Neighborhood string `gorm:"type:varchar(100);not null" json:"neighborhood"`
	City         string `gorm:"type:varchar(100);not null" json:"city"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
