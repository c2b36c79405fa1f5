package model

import "time"

// 欲しいものリスト。(user, product) は一意で、カート・注文とは独立
type WishlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:uq_wishlist_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:uq_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
