package handler

import (
	"context"

	"github.com/okibe-dev/okibe/internal/domain"
)

type MockPostService struct {
	MockSubmit    func(ctx context.Context, sub domain.PostSubmission) (domain.SubmitResult, error)
	MockCatalog   func(board domain.BoardKey) ([]domain.Post, error)
	MockThread    func(board domain.BoardKey, number domain.PostNumber) (domain.ThreadView, error)
	MockPost      func(board domain.BoardKey, number domain.PostNumber) (domain.Post, error)
	MockRemove    func(ctx context.Context, board domain.BoardKey, number domain.PostNumber) (domain.RemoveResult, error)
	MockSetSticky func(board domain.BoardKey, number domain.PostNumber, sticky bool) error
}

func (m *MockPostService) Submit(ctx context.Context, sub domain.PostSubmission) (domain.SubmitResult, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, sub)
	}
	return domain.SubmitResult{PostId: 1}, nil
}

func (m *MockPostService) Catalog(board domain.BoardKey) ([]domain.Post, error) {
	if m.MockCatalog != nil {
		return m.MockCatalog(board)
	}
	return nil, nil
}

func (m *MockPostService) Thread(board domain.BoardKey, number domain.PostNumber) (domain.ThreadView, error) {
	if m.MockThread != nil {
		return m.MockThread(board, number)
	}
	return domain.ThreadView{Root: domain.Post{Board: board, Number: number}}, nil
}

func (m *MockPostService) Post(board domain.BoardKey, number domain.PostNumber) (domain.Post, error) {
	if m.MockPost != nil {
		return m.MockPost(board, number)
	}
	return domain.Post{Board: board, Number: number}, nil
}

func (m *MockPostService) Remove(ctx context.Context, board domain.BoardKey, number domain.PostNumber) (domain.RemoveResult, error) {
	if m.MockRemove != nil {
		return m.MockRemove(ctx, board, number)
	}
	return domain.RemoveResult{DeletedPosts: 1}, nil
}

func (m *MockPostService) SetSticky(board domain.BoardKey, number domain.PostNumber, sticky bool) error {
	if m.MockSetSticky != nil {
		return m.MockSetSticky(board, number, sticky)
	}
	return nil
}

type MockBoardService struct {
	MockCreate func(data domain.BoardCreationData) error
	MockGet    func(key domain.BoardKey) (domain.Board, error)
	MockGetAll func() ([]domain.Board, error)
	MockDelete func(ctx context.Context, key domain.BoardKey) (int, error)
}

func (m *MockBoardService) Create(data domain.BoardCreationData) error {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return nil
}

func (m *MockBoardService) Get(key domain.BoardKey) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(key)
	}
	return domain.Board{Key: key}, nil
}

func (m *MockBoardService) GetAll() ([]domain.Board, error) {
	if m.MockGetAll != nil {
		return m.MockGetAll()
	}
	return nil, nil
}

func (m *MockBoardService) Delete(ctx context.Context, key domain.BoardKey) (int, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, key)
	}
	return 0, nil
}

type MockReportService struct {
	MockCreate func(data domain.ReportCreationData) error
	MockGetAll func(limit, offset int) ([]domain.Report, error)
}

func (m *MockReportService) Create(data domain.ReportCreationData) error {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return nil
}

func (m *MockReportService) GetAll(limit, offset int) ([]domain.Report, error) {
	if m.MockGetAll != nil {
		return m.MockGetAll(limit, offset)
	}
	return nil, nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}
