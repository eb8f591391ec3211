// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retention

import (
	"context"
	"log/slog"
	"time"
)

// Run prunes once immediately and then every interval until ctx is done.
// A failed pass is logged and retried at the next tick.
func (pruner *Pruner) Run(context context.Context, interval time.Duration) {
	pruner.logger.InfoContext(context, "retention_scheduler_started", slog.Duration("interval", interval))

	pruner.runPass(context)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			pruner.logger.Info("retention_scheduler_stopped")
			return
		case <-ticker.C:
			pruner.runPass(context)
		}
	}
}

func (pruner *Pruner) runPass(context context.Context) {
	if _, err := pruner.Prune(context); err != nil {
		pruner.logger.ErrorContext(context, "retention_pass_failed", slog.Any("error", err))
	}
}
