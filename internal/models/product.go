package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Space     int       `gorm:"not null;check:space > 0" json:"space"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	FridgeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"fridgeId"`
	Fridge    Fridge    `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
