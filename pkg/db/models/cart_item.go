package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a cart. Exactly one of PerfumeID and
// CustomPerfumeID is expected to be set; UnitPrice is snapshotted from the
// product at insertion time and Subtotal is always quantity × unit price.
type CartItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CartID          uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;index"`
	PerfumeID       *uuid.UUID      `gorm:"column:perfume_id;type:uuid"`
	Perfume         *Perfume        `gorm:"foreignKey:PerfumeID"`
	CustomPerfumeID *uuid.UUID      `gorm:"column:custom_perfume_id;type:uuid"`
	CustomPerfume   *CustomPerfume  `gorm:"foreignKey:CustomPerfumeID"`
	Quantity        int             `gorm:"column:quantity;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
