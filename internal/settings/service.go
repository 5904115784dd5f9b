package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Service reads and edits the portal settings.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a settings service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the current settings.
func (s *Service) Get(ctx context.Context) (*PortalSettings, error) {
	return s.repo.Get(ctx)
}

// Update saves an edited caption. A blank caption resets to the default.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*PortalSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	caption := strings.TrimSpace(req.FooterCaption)
	if caption == "" {
		caption = DefaultFooterCaption
	}
	current.FooterCaption = caption

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	s.logger.Info("portal settings updated", zap.String("footer_caption", caption))
	return current, nil
}

// FooterCaption returns the stored caption for rendering. An unreadable
// settings row degrades to empty, letting the renderer fall back to its
// configured caption.
func (s *Service) FooterCaption(ctx context.Context) string {
	current, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("settings unavailable, using configured caption", zap.Error(err))
		return ""
	}
	return current.FooterCaption
}
