package pg

// Deletes cascade from boards down to files, so removing a board or a post row
// is a single statement. board_sequence carries the next unassigned number per
// board and is only ever touched under its row lock.
const schema = `
CREATE TABLE IF NOT EXISTS boards (
    key                    TEXT PRIMARY KEY,
    name                   TEXT NOT NULL,
    max_name_len           INT NOT NULL,
    max_subject_len        INT NOT NULL,
    max_content_len        INT NOT NULL,
    max_files              INT NOT NULL,
    max_file_size          BIGINT NOT NULL,
    reply_content_or_file  BOOLEAN NOT NULL,
    thread_require_subject BOOLEAN NOT NULL,
    thread_require_content BOOLEAN NOT NULL,
    thread_require_file    BOOLEAN NOT NULL,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS board_sequence (
    board_key   TEXT PRIMARY KEY REFERENCES boards(key) ON DELETE CASCADE,
    next_number BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    uid           BIGSERIAL PRIMARY KEY,
    number        BIGINT NOT NULL,
    board_key     TEXT NOT NULL REFERENCES boards(key) ON DELETE CASCADE,
    parent_number BIGINT NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL,
    last_bump_at  TIMESTAMPTZ,
    author_name   TEXT NOT NULL,
    subject       TEXT NOT NULL DEFAULT '',
    content       TEXT NOT NULL DEFAULT '',
    sticky        BOOLEAN NOT NULL DEFAULT FALSE,
    origin_ip     TEXT NOT NULL,
    UNIQUE (board_key, number)
);

CREATE INDEX IF NOT EXISTS posts_board_parent_idx ON posts (board_key, parent_number);
CREATE INDEX IF NOT EXISTS posts_catalog_idx ON posts (board_key, sticky DESC, last_bump_at DESC) WHERE parent_number = 0;

CREATE TABLE IF NOT EXISTS files (
    id            BIGSERIAL PRIMARY KEY,
    post_uid      BIGINT NOT NULL REFERENCES posts(uid) ON DELETE CASCADE,
    stored_name   TEXT NOT NULL UNIQUE,
    thumb_name    TEXT,
    mime_type     TEXT NOT NULL,
    original_name TEXT NOT NULL,
    size_bytes    BIGINT NOT NULL,
    content_hash  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS files_post_uid_idx ON files (post_uid);

CREATE TABLE IF NOT EXISTS reports (
    id          BIGSERIAL PRIMARY KEY,
    post_uid    BIGINT NOT NULL REFERENCES posts(uid) ON DELETE CASCADE,
    level       INT NOT NULL,
    reporter_ip TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *Storage) ensureSchema() error {
	_, err := s.db.Exec(schema)
	return err
}
