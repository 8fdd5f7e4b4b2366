package postgres

import "context"

// HealthCheck reports whether the ledger tables are reachable.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping queries the members table, so a missing migration shows up as
// unhealthy rather than as failing balance reads.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1 FROM members LIMIT 1")
	return err
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
