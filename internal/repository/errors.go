package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write would violate a uniqueness
	// invariant (duplicate email, national id, subject code, or
	// student+subject grade pair).
	ErrDuplicate = errors.New("duplicate")
	// ErrReferenced is returned when a delete is blocked by dependent rows.
	ErrReferenced = errors.New("referenced by other records")
	// ErrInvalidReference is returned when a write points at a foreign
	// row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// classifyPQ maps PostgreSQL constraint violations onto the package's
// sentinel errors. The constraints are the backstop for races the
// in-transaction existence checks cannot see.
func classifyPQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrDuplicate
	case pqForeignKeyViolation:
		return ErrReferenced
	}
	return err
}

// classifyGradeInsert maps constraint violations on a grade insert. A
// foreign key violation here means the student or subject vanished
// after the in-transaction existence check, so the caller must see the
// same error as the non-race path.
func classifyGradeInsert(err error) error {
	err = classifyPQ(err)
	if errors.Is(err, ErrReferenced) {
		return ErrInvalidReference
	}
	return err
}
