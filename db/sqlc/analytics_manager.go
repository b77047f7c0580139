package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager keeps per-server counters. Callers treat its errors
// as non-fatal.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementMatchesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementMatchesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementMatchesSavedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementMatchesSavedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetMatchesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetMatchesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetMatchesSavedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetMatchesSavedCount(ctx, serverIpNet)
}
