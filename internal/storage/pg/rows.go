package pg

import (
	"database/sql"
	"fmt"

	"github.com/okibe-dev/okibe/internal/domain"
)

// postColumns is the select list shared by every post read; file columns come
// from a LEFT JOIN and are null for posts without attachments.
const postColumns = `
    p.uid, p.number, p.board_key, p.parent_number, p.created_at, p.last_bump_at,
    p.author_name, p.subject, p.content, p.sticky, p.origin_ip,
    f.stored_name, f.thumb_name, f.mime_type, f.original_name, f.size_bytes, f.content_hash`

const postFrom = ` FROM posts p LEFT JOIN files f ON f.post_uid = p.uid `

// groupPostRows folds flat post+file rows into posts with their files,
// preserving first-seen post order. The accumulation is keyed by post number,
// so rows for one post need not be adjacent.
func groupPostRows(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	index := make(map[domain.PostNumber]int)

	for rows.Next() {
		var (
			post       domain.Post
			lastBump   sql.NullTime
			storedName sql.NullString
			thumbName  sql.NullString
			mimeType   sql.NullString
			origName   sql.NullString
			sizeBytes  sql.NullInt64
			hash       sql.NullString
		)
		if err := rows.Scan(
			&post.Uid, &post.Number, &post.Board, &post.ParentNumber, &post.CreatedAt, &lastBump,
			&post.AuthorName, &post.Subject, &post.Content, &post.Sticky, &post.OriginIp,
			&storedName, &thumbName, &mimeType, &origName, &sizeBytes, &hash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		if lastBump.Valid {
			t := lastBump.Time
			post.LastBumpAt = &t
		}

		i, seen := index[post.Number]
		if !seen {
			posts = append(posts, post)
			i = len(posts) - 1
			index[post.Number] = i
		}
		if storedName.Valid {
			file := domain.File{
				OwnerPostUid: posts[i].Uid,
				StoredName:   storedName.String,
				MimeType:     mimeType.String,
				OriginalName: origName.String,
				SizeBytes:    sizeBytes.Int64,
				ContentHash:  hash.String,
			}
			if thumbName.Valid {
				t := thumbName.String
				file.ThumbName = &t
			}
			posts[i].Files = append(posts[i].Files, file)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}
