package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicate    = errors.New("duplicate record")
	ErrForeignKey   = errors.New("referenced record does not exist")
	ErrConstraint   = errors.New("constraint violation")
	ErrInvalidInput = errors.New("invalid input")
)

// SQLSTATE codes from the integrity_constraint_violation class.
const (
	codeNotNull    = "23502"
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// classify maps a Postgres integrity error onto one of the sentinels
// above, keeping the driver error in the chain. Other errors come back
// unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUnique:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case codeForeignKey:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	case codeNotNull, codeCheck:
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}
