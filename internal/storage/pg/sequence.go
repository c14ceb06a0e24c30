package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

// pg error codes surfaced as typed failures.
const (
	pgLockNotAvailable = "55P03"
	pgUniqueViolation  = "23505"
)

// lockSequence takes the exclusive row lock on the board's counter and returns
// the current next number. The lock is held to commit, which is what serializes
// number assignment (and deletion) per board. Waiting longer than the
// configured bound fails with a retryable contention error.
func (s *Storage) lockSequence(tx *sql.Tx, board domain.BoardKey) (domain.PostNumber, error) {
	if wait := s.cfg.Public.AllocationWaitMs; wait > 0 {
		if _, err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", wait)); err != nil {
			return 0, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	var number domain.PostNumber
	err := tx.QueryRow(
		"SELECT next_number FROM board_sequence WHERE board_key = $1 FOR UPDATE",
		board,
	).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Board not found")
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgLockNotAvailable {
			return 0, internal_errors.Contention("Board is busy, please retry")
		}
		return 0, fmt.Errorf("failed to lock board sequence: %w", err)
	}
	return number, nil
}

// allocateNumber hands out the next post number for the board. Only valid
// inside an open write transaction: the increment commits or rolls back with
// the caller, so no number is visible until commit and none leaks on abort.
func (s *Storage) allocateNumber(tx *sql.Tx, board domain.BoardKey) (domain.PostNumber, error) {
	number, err := s.lockSequence(tx, board)
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(
		"UPDATE board_sequence SET next_number = next_number + 1 WHERE board_key = $1",
		board,
	); err != nil {
		return 0, fmt.Errorf("failed to advance board sequence: %w", err)
	}
	return number, nil
}
