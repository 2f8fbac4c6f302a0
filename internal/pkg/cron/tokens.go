package cron

import (
	"context"
	"log/slog"
	"time"
)

const RevokedTokenPruneInterval = 10 * time.Minute

type revocationList interface {
	PruneRevokedTokens() int
}

// RegisterTokenJobs drops expired entries from the logout revocation list so
// it stays bounded when no further logouts happen.
func RegisterTokenJobs(s *Scheduler, tokens revocationList) {
	s.AddJob("prune-revoked-tokens", RevokedTokenPruneInterval, func(ctx context.Context) error {
		if pruned := tokens.PruneRevokedTokens(); pruned > 0 {
			slog.Debug("Pruned revoked tokens", "count", pruned)
		}
		return nil
	})
}
