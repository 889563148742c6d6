package otp

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/republicadrc/memberkit/pkg/email"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, challenge *Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, email string) (*Challenge, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Challenge), args.Error(1)
}

func (m *MockStore) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockMailer is a mock implementation of email.EmailSender.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
