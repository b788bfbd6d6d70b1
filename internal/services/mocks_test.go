package services

import (
	"context"
	"io"
	"time"

	"sheetmart/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByUsername(ctx context.Context, username string) (*models.Tenant, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

type MockEmailTransport struct {
	mock.Mock
}

func (m *MockEmailTransport) Send(ctx context.Context, msg *models.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) Upload(ctx context.Context, bucket, object, contentType string, reader io.Reader, size int64) error {
	args := m.Called(ctx, bucket, object, contentType, reader, size)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, object, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) Delete(ctx context.Context, bucket, object string) error {
	args := m.Called(ctx, bucket, object)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}
