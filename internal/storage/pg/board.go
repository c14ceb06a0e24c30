package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

const boardColumns = `key, name, max_name_len, max_subject_len, max_content_len, max_files, max_file_size,
    reply_content_or_file, thread_require_subject, thread_require_content, thread_require_file, created_at`

// CreateBoard inserts the board and seeds its number sequence at 1 in the same
// transaction, so a visible board always has an allocatable counter.
func (s *Storage) CreateBoard(data domain.BoardCreationData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p := data.Policy
	_, err = tx.Exec(
		`INSERT INTO boards (key, name, max_name_len, max_subject_len, max_content_len, max_files, max_file_size,
		                     reply_content_or_file, thread_require_subject, thread_require_content, thread_require_file)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		data.Key, data.Name, p.MaxNameLen, p.MaxSubjectLen, p.MaxContentLen, p.MaxFiles, p.MaxFileSize,
		p.ReplyContentOrFile, p.ThreadRequireSubject, p.ThreadRequireContent, p.ThreadRequireFile,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return internal_errors.Conflict("Board already exists")
		}
		return fmt.Errorf("failed to insert board: %w", err)
	}

	if _, err = tx.Exec(
		"INSERT INTO board_sequence (board_key, next_number) VALUES ($1, 1)",
		data.Key,
	); err != nil {
		return fmt.Errorf("failed to seed board sequence: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) GetBoard(key domain.BoardKey) (domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRow(
		`SELECT `+boardColumns+` FROM boards WHERE key = $1`, key,
	).Scan(
		&b.Key, &b.Name, &b.Policy.MaxNameLen, &b.Policy.MaxSubjectLen, &b.Policy.MaxContentLen,
		&b.Policy.MaxFiles, &b.Policy.MaxFileSize, &b.Policy.ReplyContentOrFile,
		&b.Policy.ThreadRequireSubject, &b.Policy.ThreadRequireContent, &b.Policy.ThreadRequireFile,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to query board: %w", err)
	}
	return b, nil
}

func (s *Storage) GetBoards() ([]domain.Board, error) {
	rows, err := s.db.Query(`SELECT ` + boardColumns + ` FROM boards ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(
			&b.Key, &b.Name, &b.Policy.MaxNameLen, &b.Policy.MaxSubjectLen, &b.Policy.MaxContentLen,
			&b.Policy.MaxFiles, &b.Policy.MaxFileSize, &b.Policy.ReplyContentOrFile,
			&b.Policy.ThreadRequireSubject, &b.Policy.ThreadRequireContent, &b.Policy.ThreadRequireFile,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}

// DeleteBoard removes the board and everything under it via cascades, and
// returns the orphaned file records so the caller can remove stored artifacts.
func (s *Storage) DeleteBoard(key domain.BoardKey) ([]domain.File, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	files, err := collectFiles(tx,
		`SELECT f.post_uid, f.stored_name, f.thumb_name, f.mime_type, f.original_name, f.size_bytes, f.content_hash
		 FROM files f JOIN posts p ON p.uid = f.post_uid
		 WHERE p.board_key = $1`,
		key,
	)
	if err != nil {
		return nil, err
	}

	res, err := tx.Exec("DELETE FROM boards WHERE key = $1", key)
	if err != nil {
		return nil, fmt.Errorf("failed to delete board: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, internal_errors.NotFound("Board not found")
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return files, nil
}
