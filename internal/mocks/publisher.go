package mocks

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"

	"social-service/internal/auth"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type AuditEmitterMock struct {
	mock.Mock
}

func (m *AuditEmitterMock) Emit(ctx context.Context, eventType string, actorID int, payload map[string]any) {
	m.Called(ctx, eventType, actorID, payload)
}

type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) Save(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	args := m.Called(fileHeader, subDir)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) Delete(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

func (m *StorageMock) URL(relPath string) string {
	args := m.Called(relPath)
	return args.String(0)
}

type TokenIssuerMock struct {
	mock.Mock
}

func (m *TokenIssuerMock) Issue(p auth.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
