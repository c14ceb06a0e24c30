package domain

import (
	"time"
)

// Post is a thread root (ParentNumber == 0) or a reply.
// LastBumpAt is non-nil iff the post is a thread root.
type Post struct {
	Uid          PostUid    `json:"-"`
	Number       PostNumber `json:"number"`
	Board        BoardKey   `json:"board"`
	ParentNumber PostNumber `json:"parentNumber"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastBumpAt   *time.Time `json:"lastBumpAt,omitempty"`
	AuthorName   string     `json:"authorName"`
	Subject      string     `json:"subject,omitempty"`
	Content      string     `json:"content,omitempty"`
	Sticky       bool       `json:"sticky"`
	OriginIp     string     `json:"-"`
	Files        []File     `json:"files,omitempty"`
}

func (p *Post) IsThread() bool {
	return p.ParentNumber == 0
}

// StagedFile describes an upload already written to a temp location by the
// transport layer, not yet validated or materialized.
type StagedFile struct {
	TempPath     string
	MimeType     string
	SizeBytes    int64
	OriginalName string
}

// PostSubmission carries raw user fields thru layers: handler -> service -> storage.
// Fields are unsanitized; the service rejects or cleans them before any write.
type PostSubmission struct {
	Board        BoardKey
	ParentNumber PostNumber
	AuthorName   string
	Subject      string
	Content      string
	Sticky       bool
	OriginIp     string
	StagedFiles  []StagedFile
}

// SubmitResult is what the caller gets back for an accepted submission.
type SubmitResult struct {
	PostId         PostNumber `json:"postId"`
	FilesProcessed int        `json:"filesProcessed"`
}

// RemoveResult reports the effect of a cascading delete.
type RemoveResult struct {
	DeletedPosts int `json:"deletedPosts"`
	DeletedFiles int `json:"deletedFiles"`
}

// ThreadView is a thread root together with its replies, oldest first.
type ThreadView struct {
	Root    Post   `json:"root"`
	Replies []Post `json:"replies"`
}
