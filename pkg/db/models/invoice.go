package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is the immutable record of a completed checkout. Nothing updates
// it after creation; deleting one cascades its line items.
type Invoice struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	User            *User           `gorm:"foreignKey:UserID"`
	IssuedAt        time.Time       `gorm:"column:issued_at;not null"`
	PaymentMethod   string          `gorm:"column:payment_method;not null"`
	ShippingAddress string          `gorm:"column:shipping_address;not null"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (f *Invoice) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
