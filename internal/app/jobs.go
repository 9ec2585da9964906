package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/scheduler"
)

// Schedule registers the periodic jobs enabled in cfg. A price refresh is
// only scheduled when a feed is configured.
func (a *App) Schedule(s *scheduler.Scheduler, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Prices.RefreshCron != "" {
		if !a.Services.Price.Enabled() {
			logger.Warn("price refresh schedule ignored, no price feed configured", "spec", cfg.Prices.RefreshCron)
		} else if err := s.Add("price-refresh", cfg.Prices.RefreshCron, a.refreshPrices); err != nil {
			return err
		}
	}

	if cfg.Backup.Cron != "" {
		if err := s.Add("backup", cfg.Backup.Cron, a.writeBackup); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) refreshPrices(ctx context.Context) error {
	resp, err := a.Services.Price.RefreshAll(ctx)
	if err != nil {
		return err
	}
	if resp.TotalErrors > 0 {
		return fmt.Errorf("%d of %d assets could not be priced", resp.TotalErrors, resp.TotalErrors+resp.TotalUpdated)
	}
	return nil
}

func (a *App) writeBackup(ctx context.Context) error {
	_, err := a.Services.Backup.WriteBackup(ctx)
	return err
}
