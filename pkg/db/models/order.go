package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront-backend/pkg/enums"
)

// Order is created exactly once at commit time. Only the status field moves
// afterwards; total and customer data are immutable.
type Order struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName  *string           `gorm:"column:customer_name"`
	CustomerEmail *string           `gorm:"column:customer_email"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'created'"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
