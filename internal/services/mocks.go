package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/prdupe/internal/models"
)

type (
	MockProfileBuilder struct {
		mock.Mock
	}

	MockComparator struct {
		mock.Mock
	}
)

func (m *MockProfileBuilder) Build(ctx context.Context, ref models.PRRef) (models.Profile, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockComparator) Compare(first, second models.Profile) models.ComparisonResult {
	args := m.Called(first, second)
	return args.Get(0).(models.ComparisonResult)
}
