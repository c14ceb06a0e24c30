package service

import (
	"context"

	"github.com/okibe-dev/okibe/internal/domain"
	"github.com/okibe-dev/okibe/internal/logger"
	"github.com/okibe-dev/okibe/internal/sanitize"
)

type PostService interface {
	Submit(ctx context.Context, sub domain.PostSubmission) (domain.SubmitResult, error)
	Catalog(board domain.BoardKey) ([]domain.Post, error)
	Thread(board domain.BoardKey, number domain.PostNumber) (domain.ThreadView, error)
	Post(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	Remove(ctx context.Context, board domain.BoardKey, number domain.PostNumber) (domain.RemoveResult, error)
	SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error
}

type PostStorage interface {
	GetBoard(key domain.BoardKey) (domain.Board, error)
	SavePost(sub domain.PostSubmission, files []domain.File) (domain.PostNumber, error)
	GetThreads(board domain.BoardKey) ([]domain.Post, error)
	GetThread(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	GetReplies(board domain.BoardKey, thread domain.PostNumber) ([]domain.Post, error)
	GetPost(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	DeletePost(board domain.BoardKey, number domain.PostNumber) (int, []domain.File, error)
	SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error
}

// FileProcessor turns staged uploads into media-store artifacts plus records.
type FileProcessor interface {
	ProcessAll(ctx context.Context, staged []domain.StagedFile, policy domain.PostingPolicy) ([]domain.File, error)
	DiscardArtifacts(ctx context.Context, record domain.File)
}

type Post struct {
	storage PostStorage
	files   FileProcessor
	media   MediaStore
}

func NewPost(storage PostStorage, files FileProcessor, media MediaStore) PostService {
	return &Post{storage, files, media}
}

// Submit runs the full posting pipeline: policy lookup, content cleaning, file
// materialization into the staging area, the storage transaction, and finally
// promotion of the artifacts. Rows commit before any artifact becomes public,
// and a failed transaction discards everything that was staged.
func (p *Post) Submit(ctx context.Context, sub domain.PostSubmission) (domain.SubmitResult, error) {
	board, err := p.storage.GetBoard(sub.Board)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	cleaned, err := sanitize.Clean(sub, board.Policy)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	records, err := p.files.ProcessAll(ctx, cleaned.StagedFiles, board.Policy)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	number, err := p.storage.SavePost(cleaned, records)
	if err != nil {
		for _, record := range records {
			p.files.DiscardArtifacts(ctx, record)
		}
		return domain.SubmitResult{}, err
	}

	// The post is committed at this point. A failed promotion leaves a row
	// pointing at a staged artifact, which is recoverable, so log and go on.
	for _, record := range records {
		for _, name := range record.ArtifactNames() {
			if err := p.media.Promote(ctx, name); err != nil {
				logger.Log.Error("failed to promote artifact", "name", name, "error", err.Error())
			}
		}
	}

	return domain.SubmitResult{PostId: number, FilesProcessed: len(records)}, nil
}

func (p *Post) Catalog(board domain.BoardKey) ([]domain.Post, error) {
	if _, err := p.storage.GetBoard(board); err != nil {
		return nil, err
	}
	return p.storage.GetThreads(board)
}

func (p *Post) Thread(board domain.BoardKey, number domain.PostNumber) (domain.ThreadView, error) {
	root, err := p.storage.GetThread(board, number)
	if err != nil {
		return domain.ThreadView{}, err
	}
	replies, err := p.storage.GetReplies(board, number)
	if err != nil {
		return domain.ThreadView{}, err
	}
	return domain.ThreadView{Root: root, Replies: replies}, nil
}

func (p *Post) Post(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	return p.storage.GetPost(board, number)
}

// Remove deletes the post (and its replies when it is a thread root) and then
// the stored artifacts. Artifact removal failures are logged, not surfaced:
// the rows are already gone and a retry cannot bring them back.
func (p *Post) Remove(ctx context.Context, board domain.BoardKey, number domain.PostNumber) (domain.RemoveResult, error) {
	deleted, files, err := p.storage.DeletePost(board, number)
	if err != nil {
		return domain.RemoveResult{}, err
	}

	return domain.RemoveResult{
		DeletedPosts: deleted,
		DeletedFiles: p.removeArtifacts(ctx, files),
	}, nil
}

func (p *Post) SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error {
	return p.storage.SetSticky(board, number, sticky)
}

// removeArtifacts deletes every artifact of every record and returns how many
// records were fully removed.
func (p *Post) removeArtifacts(ctx context.Context, files []domain.File) int {
	removed := 0
	for _, f := range files {
		ok := true
		for _, name := range f.ArtifactNames() {
			if err := p.media.Delete(ctx, name); err != nil {
				logger.Log.Error("failed to delete artifact", "name", name, "error", err.Error())
				ok = false
			}
		}
		if ok {
			removed++
		}
	}
	return removed
}
