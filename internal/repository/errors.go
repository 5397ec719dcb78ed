package repo

import (
	"errors"

	"teamgate/internal/apperr"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode = "23505"
)

// translateWrite maps a write-time unique violation onto the conflict
// sentinel so allocator probe loops can retry with the next candidate.
func translateWrite(err error) error {
	pgErr := &pq.Error{}
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperr.ErrConflict
	}
	return err
}
