package model

import "time"

// 画像URL未指定のときのデフォルト
const DefaultProductImageURL = "https://placehold.co/600x400?text=No+Image"

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`

	//最小通貨単位で保持
	Price int64 `gorm:"not null" json:"price"`

	//在庫。減らすのは支払い確定だけ
	Stock int64 `gorm:"not null" json:"stock"`

	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
