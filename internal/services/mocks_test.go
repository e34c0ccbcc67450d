package services

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/otp"
	"github.com/venturelink/backend/internal/storage"
)

type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogTransaction(tx ledger.Transaction) {
	m.Called(tx)
}

func (m *MockAuditLogger) LogError(reference, subject string, err error) {
	m.Called(reference, subject, err)
}

func (m *MockAuditLogger) LogOperation(reference, subject, operation, details string) {
	m.Called(reference, subject, operation, details)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Issue(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func (m *MockVerifier) Verify(ctx context.Context, subject, code string) (otp.Verdict, error) {
	args := m.Called(ctx, subject, code)
	return args.Get(0).(otp.Verdict), args.Error(1)
}

var errStoreDown = errors.New("store unavailable")

// failingStore rejects writes to one collection and delegates the rest.
type failingStore struct {
	*storage.MemoryStore
	collection string
}

func (f *failingStore) Put(ctx context.Context, collection, id string, data []byte) error {
	if collection == f.collection {
		return errStoreDown
	}
	return f.MemoryStore.Put(ctx, collection, id, data)
}
