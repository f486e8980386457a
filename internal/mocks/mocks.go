// Package mocks holds hand-written testify mocks for the pipeline's
// collaborator interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
)

// MockContentSource implements pipeline.ContentSource.
type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) GetRepo(ctx context.Context, owner, repo string) (*models.RepoMetadata, error) {
	args := m.Called(ctx, owner, repo)
	var meta *models.RepoMetadata
	if v := args.Get(0); v != nil {
		meta = v.(*models.RepoMetadata)
	}
	return meta, args.Error(1)
}

func (m *MockContentSource) ListFiles(ctx context.Context, owner, repo string) ([]models.FileEntry, error) {
	args := m.Called(ctx, owner, repo)
	var files []models.FileEntry
	if v := args.Get(0); v != nil {
		files = v.([]models.FileEntry)
	}
	return files, args.Error(1)
}

func (m *MockContentSource) GetFileContent(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// MockGenerator implements llm.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
