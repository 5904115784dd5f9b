package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context) (*PortalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PortalSettings), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, s *PortalSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestUpdateCaption(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Get", ctx).Return(&PortalSettings{ID: 1, FooterCaption: DefaultFooterCaption}, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(s *PortalSettings) bool {
		return s.FooterCaption == "Issued by the Training Institute"
	})).Return(nil)

	updated, err := service.Update(ctx, UpdateRequest{FooterCaption: "  Issued by the Training Institute  "})

	require.NoError(t, err)
	assert.Equal(t, "Issued by the Training Institute", updated.FooterCaption)
	mockRepo.AssertExpectations(t)
}

func TestUpdateBlankCaptionResetsDefault(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Get", ctx).Return(&PortalSettings{ID: 1, FooterCaption: "old"}, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(s *PortalSettings) bool {
		return s.FooterCaption == DefaultFooterCaption
	})).Return(nil)

	updated, err := service.Update(ctx, UpdateRequest{FooterCaption: "   "})

	require.NoError(t, err)
	assert.Equal(t, DefaultFooterCaption, updated.FooterCaption)
}

func TestFooterCaptionDegradesWhenUnreadable(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Get", ctx).Return(nil, errors.New("connection refused"))

	assert.Equal(t, "", service.FooterCaption(ctx))
}

func TestFooterCaptionReturnsStoredValue(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Get", ctx).Return(&PortalSettings{ID: 1, FooterCaption: "custom"}, nil)

	assert.Equal(t, "custom", service.FooterCaption(ctx))
}
