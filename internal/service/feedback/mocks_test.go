package feedback

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

type mockCompleter struct {
	mu           sync.Mutex
	requests     []provider.CompletionRequest
	CompleteFunc func(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error)
}

func (m *mockCompleter) Name() string { return "mock" }

func (m *mockCompleter) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &provider.CompletionResult{Text: "[]"}, nil
}

func (m *mockCompleter) Requests() []provider.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]provider.CompletionRequest(nil), m.requests...)
}

// replying returns a completer that always answers with text.
func replying(text string) *mockCompleter {
	return &mockCompleter{
		CompleteFunc: func(context.Context, provider.CompletionRequest) (*provider.CompletionResult, error) {
			return &provider.CompletionResult{Text: text}, nil
		},
	}
}

type mockMessageRepo struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	UpdatePartsFunc func(ctx context.Context, id uuid.UUID, parts []domain.MessagePart) error
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMessageRepo) UpdateParts(ctx context.Context, id uuid.UUID, parts []domain.MessagePart) error {
	if m.UpdatePartsFunc != nil {
		return m.UpdatePartsFunc(ctx, id, parts)
	}
	return nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
