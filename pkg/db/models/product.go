package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Stock is the authoritative available
// quantity and is mutated only by order commits.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Category    string          `gorm:"column:category;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	ImageURL    *string         `gorm:"column:image_url"`
	Badge       *string         `gorm:"column:badge"`
	Stock       int             `gorm:"column:stock;not null;default:0;check:stock >= 0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
