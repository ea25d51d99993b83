package workouts

import (
	"context"

	"github.com/google/uuid"
	"github.com/halgorm/halgorm/pkg/dbutil"
	"gorm.io/gorm"
)

// Store persists workouts through GORM.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Query returns the ordered base query index views paginate.
func (s *Store) Query() *gorm.DB {
	return s.db.Model(&Workout{}).Order("created_at, id")
}

// Get loads one workout or NotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Workout, error) {
	return dbutil.FindOne[Workout](s.db.WithContext(ctx).Where("id = ?", id))
}

// Create inserts a new workout built from the given form.
func (s *Store) Create(ctx context.Context, form *Form) (*Workout, error) {
	w := &Workout{
		Title:           form.Title,
		Kind:            form.Kind,
		Score:           form.Score,
		DurationSeconds: form.DurationSeconds,
	}
	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}
	return w, nil
}

// Patch applies the sanitized field updates to an existing workout and
// returns the result.
func (s *Store) Patch(ctx context.Context, id uuid.UUID, updates map[string]any) (*Workout, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(w).Updates(updates).Error; err != nil {
			return nil, dbutil.WrapError(err)
		}
	}
	return s.Get(ctx, id)
}
