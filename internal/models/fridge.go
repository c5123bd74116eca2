package models

import (
	"time"

	"github.com/google/uuid"
)

// Fridge is reference data. Several fridges may share a location.
type Fridge struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Location  string    `gorm:"size:100;not null;index" json:"location"`
	Capacity  int       `gorm:"not null;check:capacity >= 0" json:"capacity"`
}
