package cmd

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type authServiceStub struct {
	cleaned atomic.Int32
}

func (s *authServiceStub) Register(context.Context, *request.RegisterRequest) (*response.AuthResponse, error) {
	return nil, nil
}

func (s *authServiceStub) Login(context.Context, *request.LoginRequest) (*response.AuthResponse, error) {
	return nil, nil
}

func (s *authServiceStub) Logout(context.Context, string) error { return nil }

func (s *authServiceStub) LogoutAll(context.Context, uuid.UUID) error { return nil }

func (s *authServiceStub) CleanExpiredSessions(context.Context) error {
	s.cleaned.Add(1)
	return nil
}

func TestRunSessionJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &authServiceStub{}

	done := make(chan struct{})
	go func() {
		runSessionJanitor(ctx, stub, 5*time.Millisecond, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return stub.cleaned.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
