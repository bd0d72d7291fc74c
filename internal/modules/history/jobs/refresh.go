package jobs

import (
	"fmt"

	"github.com/aristath/goldsim/internal/modules/history"
	"github.com/rs/zerolog"
)

// RefreshJob regenerates the cached historical series on a schedule,
// so long-running deployments pick up snapshot updates without a
// restart.
type RefreshJob struct {
	service *history.Service
	log     zerolog.Logger
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(service *history.Service, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		service: service,
		log:     log.With().Str("job", "history_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "history_refresh"
}

// Run refreshes the cached series
func (j *RefreshJob) Run() error {
	if err := j.service.Refresh(); err != nil {
		return fmt.Errorf("history refresh failed: %w", err)
	}
	return nil
}
