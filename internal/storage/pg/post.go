package pg

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

// SavePost allocates the post number and writes the post plus its file rows in
// a single transaction. For replies the parent thread is bumped in the same
// transaction, so a reply either lands with its bump or not at all.
func (s *Storage) SavePost(sub domain.PostSubmission, files []domain.File) (domain.PostNumber, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	number, err := s.allocateNumber(tx, sub.Board)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Round(time.Microsecond)

	if sub.ParentNumber != 0 {
		res, err := tx.Exec(
			`UPDATE posts SET last_bump_at = $1 WHERE board_key = $2 AND number = $3 AND parent_number = 0`,
			now, sub.Board, sub.ParentNumber,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to bump thread: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return 0, internal_errors.NotFound("Thread not found")
		}
	}

	var lastBump any
	if sub.ParentNumber == 0 {
		lastBump = now
	}

	var uid domain.PostUid
	err = tx.QueryRow(
		`INSERT INTO posts (number, board_key, parent_number, created_at, last_bump_at,
		                    author_name, subject, content, sticky, origin_ip)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING uid`,
		number, sub.Board, sub.ParentNumber, now, lastBump,
		sub.AuthorName, sub.Subject, sub.Content, sub.Sticky, sub.OriginIp,
	).Scan(&uid)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	if uid == 0 {
		return 0, fmt.Errorf("post insert returned zero uid")
	}

	for _, f := range files {
		_, err = tx.Exec(
			`INSERT INTO files (post_uid, stored_name, thumb_name, mime_type, original_name, size_bytes, content_hash)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uid, f.StoredName, f.ThumbName, f.MimeType, f.OriginalName, f.SizeBytes, f.ContentHash,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert file record: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return number, nil
}

// GetThreads returns the board catalog: thread roots ordered sticky first,
// then most recently bumped.
func (s *Storage) GetThreads(board domain.BoardKey) ([]domain.Post, error) {
	rows, err := s.db.Query(
		`SELECT`+postColumns+postFrom+`
		 WHERE p.board_key = $1 AND p.parent_number = 0
		 ORDER BY p.sticky DESC, p.last_bump_at DESC, p.number DESC, f.id ASC`,
		board,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	return groupPostRows(rows)
}

// GetThread returns the thread root only. Replies are fetched separately.
func (s *Storage) GetThread(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	rows, err := s.db.Query(
		`SELECT`+postColumns+postFrom+`
		 WHERE p.board_key = $1 AND p.number = $2 AND p.parent_number = 0
		 ORDER BY f.id ASC`,
		board, number,
	)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to query thread: %w", err)
	}
	posts, err := groupPostRows(rows)
	if err != nil {
		return domain.Post{}, err
	}
	if len(posts) == 0 {
		return domain.Post{}, internal_errors.NotFound("Thread not found")
	}
	return posts[0], nil
}

// GetReplies returns a thread's replies in creation order.
func (s *Storage) GetReplies(board domain.BoardKey, thread domain.PostNumber) ([]domain.Post, error) {
	rows, err := s.db.Query(
		`SELECT`+postColumns+postFrom+`
		 WHERE p.board_key = $1 AND p.parent_number = $2
		 ORDER BY p.created_at ASC, p.number ASC, f.id ASC`,
		board, thread,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	return groupPostRows(rows)
}

// GetPost returns a single post, thread root or reply.
func (s *Storage) GetPost(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	rows, err := s.db.Query(
		`SELECT`+postColumns+postFrom+`
		 WHERE p.board_key = $1 AND p.number = $2
		 ORDER BY f.id ASC`,
		board, number,
	)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	posts, err := groupPostRows(rows)
	if err != nil {
		return domain.Post{}, err
	}
	if len(posts) == 0 {
		return domain.Post{}, internal_errors.NotFound("No post found")
	}
	return posts[0], nil
}

// SetSticky pins or unpins a thread root.
func (s *Storage) SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error {
	res, err := s.db.Exec(
		`UPDATE posts SET sticky = $1 WHERE board_key = $2 AND number = $3 AND parent_number = 0`,
		sticky, board, number,
	)
	if err != nil {
		return fmt.Errorf("failed to update sticky flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

// DeletePost removes a post and, when it is a thread root, all of its replies.
// It takes the board's sequence lock first so deletions serialize against
// in-flight submissions targeting the same thread. Returns the number of
// deleted posts and the file records that belonged to them so the caller can
// remove the stored artifacts afterwards.
func (s *Storage) DeletePost(board domain.BoardKey, number domain.PostNumber) (int, []domain.File, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = s.lockSequence(tx, board); err != nil {
		return 0, nil, err
	}

	files, err := collectFiles(tx,
		`SELECT f.post_uid, f.stored_name, f.thumb_name, f.mime_type, f.original_name, f.size_bytes, f.content_hash
		 FROM files f JOIN posts p ON p.uid = f.post_uid
		 WHERE p.board_key = $1 AND (p.number = $2 OR p.parent_number = $2)`,
		board, number,
	)
	if err != nil {
		return 0, nil, err
	}

	res, err := tx.Exec(
		`DELETE FROM posts WHERE board_key = $1 AND (number = $2 OR parent_number = $2)`,
		board, number,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to delete posts: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return 0, nil, internal_errors.NotFound("No post found")
	}

	if err = tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(affected), files, nil
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func collectFiles(q querier, query string, args ...any) ([]domain.File, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query file records: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var (
			f     domain.File
			thumb sql.NullString
		)
		if err := rows.Scan(&f.OwnerPostUid, &f.StoredName, &thumb, &f.MimeType, &f.OriginalName, &f.SizeBytes, &f.ContentHash); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		if thumb.Valid {
			t := thumb.String
			f.ThumbName = &t
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return files, nil
}
