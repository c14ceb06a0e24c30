package domain

import (
	"time"
)

// PostingPolicy is the per-board content policy enforced before persistence.
type PostingPolicy struct {
	MaxNameLen    int   `yaml:"max_name_len" json:"maxNameLen"`
	MaxSubjectLen int   `yaml:"max_subject_len" json:"maxSubjectLen"`
	MaxContentLen int   `yaml:"max_content_len" json:"maxContentLen"`
	MaxFiles      int   `yaml:"max_files" json:"maxFiles"`
	MaxFileSize   int64 `yaml:"max_file_size" json:"maxFileSize"`

	// Replies must carry content or at least one file.
	ReplyContentOrFile bool `yaml:"reply_content_or_file" json:"replyContentOrFile"`
	// Thread roots may additionally be required to carry these.
	ThreadRequireSubject bool `yaml:"thread_require_subject" json:"threadRequireSubject"`
	ThreadRequireContent bool `yaml:"thread_require_content" json:"threadRequireContent"`
	ThreadRequireFile    bool `yaml:"thread_require_file" json:"threadRequireFile"`
}

// DefaultPostingPolicy mirrors the stock board configuration.
func DefaultPostingPolicy() PostingPolicy {
	return PostingPolicy{
		MaxNameLen:           16,
		MaxSubjectLen:        20,
		MaxContentLen:        900,
		MaxFiles:             2,
		MaxFileSize:          4096 * 1000,
		ReplyContentOrFile:   true,
		ThreadRequireContent: true,
	}
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Key    BoardKey
	Name   BoardName
	Policy PostingPolicy
}

type Board struct {
	Key       BoardKey      `json:"key"`
	Name      BoardName     `json:"name"`
	Policy    PostingPolicy `json:"policy"`
	CreatedAt time.Time     `json:"createdAt"`
}
