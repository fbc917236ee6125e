package service

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var errSendFailed = errors.New("send failed")

type fakeConn struct {
	mu sync.Mutex

	id      string
	session *entity.Session
	sendErr error
	sent    []any
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, session: entity.NewSession()}
}

func (that *fakeConn) ID() string               { return that.id }
func (that *fakeConn) Session() *entity.Session { return that.session }

func (that *fakeConn) Send(msg any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sendErr != nil {
		return that.sendErr
	}

	that.sent = append(that.sent, msg)
	return nil
}

func (that *fakeConn) Sent() []any {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]any(nil), that.sent...)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, result *entity.Result) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) Stats(ctx context.Context) (*entity.ResultStats, error) {
	args := that.Called(ctx)
	if stats, ok := args.Get(0).(*entity.ResultStats); ok {
		return stats, args.Error(1)
	}

	return nil, args.Error(1)
}

func (that *mockResultRepo) Recent(ctx context.Context, limit int64) ([]*entity.Result, error) {
	args := that.Called(ctx, limit)
	if results, ok := args.Get(0).([]*entity.Result); ok {
		return results, args.Error(1)
	}

	return nil, args.Error(1)
}
