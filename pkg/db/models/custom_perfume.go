package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomPerfume is a user-composed blend awaiting approval. Its price is a
// pure function of the note count, recomputed whenever the note set changes.
type CustomPerfume struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Approved    bool            `gorm:"column:approved;not null;default:false"`
	ImageURL    string          `gorm:"column:image_url;size:1000"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	User        *User           `gorm:"foreignKey:UserID"`
	Notes       []OlfactoryNote `gorm:"many2many:custom_perfume_notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *CustomPerfume) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CustomPerfumeBasePrice and CustomPerfumeNotePrice define the pricing
// formula: base + per-note surcharge.
var (
	CustomPerfumeBasePrice = decimal.NewFromInt(50)
	CustomPerfumeNotePrice = decimal.NewFromInt(10)
)

// CustomPerfumePrice computes the deterministic price for a note count.
func CustomPerfumePrice(noteCount int) decimal.Decimal {
	return CustomPerfumeBasePrice.Add(CustomPerfumeNotePrice.Mul(decimal.NewFromInt(int64(noteCount))))
}
