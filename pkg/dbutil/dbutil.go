// Package dbutil translates GORM and Postgres driver errors into the
// request error model.
package dbutil

import (
	"github.com/halgorm/halgorm/pkg/halerrors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const duplicateKeyErrorCode = "23505"

// WrapError wraps a gorm error.
func WrapError(err error) error {
	var pgErr *pgconn.PgError

	if err == nil {
		return nil
	} else if _, ok := err.(*halerrors.Error); ok {
		return err
	} else if halerrors.Is(err, gorm.ErrRecordNotFound) {
		return halerrors.NotFound
	} else if halerrors.As(err, &pgErr) {
		switch pgErr.Code {
		case duplicateKeyErrorCode:
			return halerrors.Conflict.
				Explain("duplication of key").
				Wrap(err)
		}
	}

	return err
}

// FindOne loads a single row from the given query, mapping an empty result
// to NotFound. This is the first_or_404 lookup resource views use.
func FindOne[T any](db *gorm.DB) (*T, error) {
	var item T
	result := db.Find(&item)
	if result.Error != nil {
		return nil, WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, halerrors.NotFound
	}
	return &item, nil
}
