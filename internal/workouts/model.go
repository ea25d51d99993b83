// Package workouts is the demo resource: a workout log exposed as
// hal+json through the library's view, form and pagination packages.
package workouts

import (
	"time"

	"github.com/google/uuid"
	"github.com/halgorm/halgorm/pkg/hal"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Workout is one logged training session.
type Workout struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string          `json:"title" gorm:"size:120;not null"`
	Kind            string          `json:"kind" gorm:"size:16;not null"`
	Score           decimal.Decimal `json:"score" gorm:"type:numeric(12,2)"`
	DurationSeconds int             `json:"duration_seconds"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"-"`
}

// BeforeCreate assigns the primary key.
func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// MarshalHAL is the serializable view resource and index responses embed.
func (w Workout) MarshalHAL() map[string]any {
	return map[string]any{
		"id":               w.ID,
		"title":            w.Title,
		"kind":             w.Kind,
		"score":            w.Score,
		"duration_seconds": w.DurationSeconds,
		"created_at":       w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

var _ hal.Marshaler = Workout{}

// Form declares the validation rules for creating and patching workouts.
type Form struct {
	Title           string          `json:"title" validate:"required,min=3,max=120"`
	Kind            string          `json:"kind" validate:"required,oneof=run ride swim row strength"`
	Score           decimal.Decimal `json:"score" validate:"omitempty"`
	DurationSeconds int             `json:"duration_seconds" validate:"omitempty,gte=0,lte=86400"`
}
