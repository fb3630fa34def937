package download

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ytget/mycourses-downloader/internal/platform"
)

// waitForSettle polls the work directory until no in-progress download marker
// remains. The batch counts as settled once every expected file arrived, or
// once it stayed unchanged for the quiet period with fewer files than expected.
func (s *Service) waitForSettle(ctx context.Context, expected int, logger *slog.Logger) (platform.DirSnapshot, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SettleTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	lastCount := -1
	stableSince := time.Now()

	for {
		snap, err := platform.ScanDownloadDir(s.cfg.WorkDir)
		if err != nil {
			return snap, goerr.Wrap(err, "failed to scan work directory")
		}

		now := time.Now()
		if !snap.Settled() || len(snap.Complete) != lastCount {
			lastCount = len(snap.Complete)
			stableSince = now
		}

		if snap.Settled() {
			if len(snap.Complete) >= expected {
				return snap, nil
			}
			if now.Sub(stableSince) >= s.cfg.QuietPeriod {
				logger.Warn("batch settled with missing files", "expected", expected, "present", len(snap.Complete))
				return snap, nil
			}
		}

		select {
		case <-ctx.Done():
			if err := parent.Err(); err != nil {
				return snap, err
			}
			return snap, goerr.Wrap(ErrSettleTimeout, "gave up waiting for downloads",
				goerr.V("timeout", s.cfg.SettleTimeout),
				goerr.V("in_progress", snap.InProgress),
			)
		case <-ticker.C:
		}
	}
}
