package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockImageUploader is a mock implementation of the image uploader
type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) Upload(ctx context.Context, recipeID int, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, recipeID, data, contentType)
	return args.String(0), args.Error(1)
}
