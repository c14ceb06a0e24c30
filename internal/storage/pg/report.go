package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/okibe-dev/okibe/internal/domain"
	internal_errors "github.com/okibe-dev/okibe/internal/errors"
)

// CreateReport resolves the reported post to its uid and files the report. A
// report survives as long as the post does; the cascade drops it with the post.
func (s *Storage) CreateReport(data domain.ReportCreationData) error {
	var uid domain.PostUid
	err := s.db.QueryRow(
		"SELECT uid FROM posts WHERE board_key = $1 AND number = $2",
		data.Board, data.PostNumber,
	).Scan(&uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("No post found")
		}
		return fmt.Errorf("failed to resolve reported post: %w", err)
	}

	if _, err = s.db.Exec(
		"INSERT INTO reports (post_uid, level, reporter_ip) VALUES ($1, $2, $3)",
		uid, data.Level, data.ReporterIp,
	); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetReports returns the newest reports first, joined back to the reported
// post so moderators see board and number without extra lookups.
func (s *Storage) GetReports(limit, offset int) ([]domain.Report, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.post_uid, p.number, p.board_key, r.level, r.reporter_ip, r.created_at
		 FROM reports r JOIN posts p ON p.uid = r.post_uid
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(&r.Id, &r.PostUid, &r.PostNumber, &r.Board, &r.Level, &r.ReporterIp, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return reports, nil
}
