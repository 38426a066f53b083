package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceItem snapshots one cart line at checkout time. ProductName keeps
// the display name (with the " (Personalizado)" suffix for custom blends)
// so the invoice stays readable even after catalog changes.
type InvoiceItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID       uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	PerfumeID       *uuid.UUID      `gorm:"column:perfume_id;type:uuid"`
	Perfume         *Perfume        `gorm:"foreignKey:PerfumeID"`
	CustomPerfumeID *uuid.UUID      `gorm:"column:custom_perfume_id;type:uuid"`
	CustomPerfume   *CustomPerfume  `gorm:"foreignKey:CustomPerfumeID"`
	ProductName     string          `gorm:"column:product_name;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
