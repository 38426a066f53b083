package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OlfactoryNote is a scent ingredient (bergamota, sándalo, vainilla). It is
// shared by catalog perfumes and custom perfumes through join tables.
type OlfactoryNote struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (n *OlfactoryNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
