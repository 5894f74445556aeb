package scheduler

import (
	"context"
	"fmt"

	"github.com/SonGokuFan1996/NeuroNet/internal/config"
)

// EntitlementSyncer переносит статус подписки в ленту (purchases.Flow).
type EntitlementSyncer interface {
	Sync(ctx context.Context, userID string) (bool, error)
}

// FeedFetcher перезагружает ленту (feed.Container).
type FeedFetcher interface {
	Fetch(ctx context.Context) error
}

// EntitlementSyncJob — синхронизация премиума пользователя userID.
func EntitlementSyncJob(s EntitlementSyncer, userID string) Job {
	return func(ctx context.Context) error {
		_, err := s.Sync(ctx, userID)
		return err
	}
}

// FeedRefreshJob — периодическая перезагрузка ленты.
func FeedRefreshJob(f FeedFetcher) Job {
	return f.Fetch
}

// Register ставит задачи из конфигурации. Пустая спецификация отключает задачу;
// nil-зависимость тоже.
func Register(s *Scheduler, cfg config.SchedulerConfig, syncer EntitlementSyncer, userID string, fetcher FeedFetcher) error {
	if cfg.EntitlementSync != "" && syncer != nil {
		if err := s.AddJob(JobEntitlementSync, cfg.EntitlementSync, EntitlementSyncJob(syncer, userID)); err != nil {
			return fmt.Errorf("scheduler.Register: %w", err)
		}
	}

	if cfg.FeedRefresh != "" && fetcher != nil {
		if err := s.AddJob(JobFeedRefresh, cfg.FeedRefresh, FeedRefreshJob(fetcher)); err != nil {
			return fmt.Errorf("scheduler.Register: %w", err)
		}
	}

	return nil
}
