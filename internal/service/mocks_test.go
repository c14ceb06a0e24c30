package service

import (
	"context"
	"io"
	"sync"

	"github.com/okibe-dev/okibe/internal/domain"
)

// Mock structs

type MockPostStorage struct {
	GetBoardFunc   func(key domain.BoardKey) (domain.Board, error)
	SavePostFunc   func(sub domain.PostSubmission, files []domain.File) (domain.PostNumber, error)
	GetThreadsFunc func(board domain.BoardKey) ([]domain.Post, error)
	GetThreadFunc  func(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	GetRepliesFunc func(board domain.BoardKey, thread domain.PostNumber) ([]domain.Post, error)
	GetPostFunc    func(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	DeletePostFunc func(board domain.BoardKey, number domain.PostNumber) (int, []domain.File, error)
	SetStickyFunc  func(board domain.BoardKey, number domain.PostNumber, sticky bool) error
}

func (m *MockPostStorage) GetBoard(key domain.BoardKey) (domain.Board, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(key)
	}
	return domain.Board{Key: key, Name: "Mock", Policy: domain.DefaultPostingPolicy()}, nil
}

func (m *MockPostStorage) SavePost(sub domain.PostSubmission, files []domain.File) (domain.PostNumber, error) {
	if m.SavePostFunc != nil {
		return m.SavePostFunc(sub, files)
	}
	return 1, nil
}

func (m *MockPostStorage) GetThreads(board domain.BoardKey) ([]domain.Post, error) {
	if m.GetThreadsFunc != nil {
		return m.GetThreadsFunc(board)
	}
	return nil, nil
}

func (m *MockPostStorage) GetThread(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(board, number)
	}
	return domain.Post{Board: board, Number: number}, nil
}

func (m *MockPostStorage) GetReplies(board domain.BoardKey, thread domain.PostNumber) ([]domain.Post, error) {
	if m.GetRepliesFunc != nil {
		return m.GetRepliesFunc(board, thread)
	}
	return nil, nil
}

func (m *MockPostStorage) GetPost(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(board, number)
	}
	return domain.Post{Board: board, Number: number}, nil
}

func (m *MockPostStorage) DeletePost(board domain.BoardKey, number domain.PostNumber) (int, []domain.File, error) {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(board, number)
	}
	return 1, nil, nil
}

func (m *MockPostStorage) SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error {
	if m.SetStickyFunc != nil {
		return m.SetStickyFunc(board, number, sticky)
	}
	return nil
}

type MockFileProcessor struct {
	ProcessAllFunc       func(ctx context.Context, staged []domain.StagedFile, policy domain.PostingPolicy) ([]domain.File, error)
	DiscardArtifactsFunc func(ctx context.Context, record domain.File)
}

func (m *MockFileProcessor) ProcessAll(ctx context.Context, staged []domain.StagedFile, policy domain.PostingPolicy) ([]domain.File, error) {
	if m.ProcessAllFunc != nil {
		return m.ProcessAllFunc(ctx, staged, policy)
	}
	var records []domain.File
	for i := range staged {
		records = append(records, domain.File{StoredName: staged[i].OriginalName})
	}
	return records, nil
}

func (m *MockFileProcessor) DiscardArtifacts(ctx context.Context, record domain.File) {
	if m.DiscardArtifactsFunc != nil {
		m.DiscardArtifactsFunc(ctx, record)
	}
}

// MockMediaStore records every call per operation, guarded for concurrent use.
type MockMediaStore struct {
	mu sync.Mutex

	StageFunc   func(ctx context.Context, name string, data io.Reader, size int64, contentType string) error
	PromoteFunc func(ctx context.Context, name string) error
	DiscardFunc func(ctx context.Context, name string) error
	DeleteFunc  func(ctx context.Context, name string) error

	Staged    []string
	Promoted  []string
	Discarded []string
	Deleted   []string
}

func (m *MockMediaStore) Stage(ctx context.Context, name string, data io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	m.Staged = append(m.Staged, name)
	m.mu.Unlock()
	if m.StageFunc != nil {
		return m.StageFunc(ctx, name, data, size, contentType)
	}
	return nil
}

func (m *MockMediaStore) Promote(ctx context.Context, name string) error {
	m.mu.Lock()
	m.Promoted = append(m.Promoted, name)
	m.mu.Unlock()
	if m.PromoteFunc != nil {
		return m.PromoteFunc(ctx, name)
	}
	return nil
}

func (m *MockMediaStore) Discard(ctx context.Context, name string) error {
	m.mu.Lock()
	m.Discarded = append(m.Discarded, name)
	m.mu.Unlock()
	if m.DiscardFunc != nil {
		return m.DiscardFunc(ctx, name)
	}
	return nil
}

func (m *MockMediaStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, name)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

type MockBoardStorage struct {
	CreateBoardFunc func(data domain.BoardCreationData) error
	GetBoardFunc    func(key domain.BoardKey) (domain.Board, error)
	GetBoardsFunc   func() ([]domain.Board, error)
	DeleteBoardFunc func(key domain.BoardKey) ([]domain.File, error)
}

func (m *MockBoardStorage) CreateBoard(data domain.BoardCreationData) error {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(data)
	}
	return nil
}

func (m *MockBoardStorage) GetBoard(key domain.BoardKey) (domain.Board, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(key)
	}
	return domain.Board{Key: key}, nil
}

func (m *MockBoardStorage) GetBoards() ([]domain.Board, error) {
	if m.GetBoardsFunc != nil {
		return m.GetBoardsFunc()
	}
	return nil, nil
}

func (m *MockBoardStorage) DeleteBoard(key domain.BoardKey) ([]domain.File, error) {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(key)
	}
	return nil, nil
}

type MockReportStorage struct {
	CreateReportFunc func(data domain.ReportCreationData) error
	GetReportsFunc   func(limit, offset int) ([]domain.Report, error)
}

func (m *MockReportStorage) CreateReport(data domain.ReportCreationData) error {
	if m.CreateReportFunc != nil {
		return m.CreateReportFunc(data)
	}
	return nil
}

func (m *MockReportStorage) GetReports(limit, offset int) ([]domain.Report, error) {
	if m.GetReportsFunc != nil {
		return m.GetReportsFunc(limit, offset)
	}
	return nil, nil
}

type MockReportGate struct {
	AllowFunc func(key string) bool
}

func (m *MockReportGate) Allow(key string) bool {
	if m.AllowFunc != nil {
		return m.AllowFunc(key)
	}
	return true
}
