package service

import (
	"context"
	"time"

	"talent-portal/internal/logger"

	"go.uber.org/zap"
)

// StartTokenCleanupJob periodically removes expired opaque tokens and
// stale refresh-token rows until the context is cancelled.
func (s *UserService) StartTokenCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpiredTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredTokens(ctx)
		}
	}
}

func (s *UserService) cleanupExpiredTokens(ctx context.Context) {
	if err := s.tokens.DeleteExpiredTokens(ctx, s.config.Token.Lifespan()); err != nil {
		logger.Error("Failed to delete expired opaque tokens", zap.Error(err))
	}

	olderThan := 24 * time.Hour
	if err := s.refreshTokens.DeleteExpiredTokens(ctx, olderThan); err != nil {
		logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
		return
	}

	logger.Debug("Expired tokens cleaned up",
		zap.Duration("older_than", olderThan),
	)
}
