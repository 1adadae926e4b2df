package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunt-app/jobhunt-be/internal/config"
	"github.com/jobhunt-app/jobhunt-be/shared/logger"
)

func TestSchedulerStartValidSpecs(t *testing.T) {
	cfg := config.SchedulerConfig{
		Enabled:     true,
		ScrapeSpec:  "0 */4 * * *",
		AnalyzeSpec: "30 */2 * * *",
		CleanupSpec: "0 2 * * *",
	}

	s := NewScheduler(cfg, nil, nil, logger.NewDefault().Logger)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestSchedulerStartRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SchedulerConfig
	}{
		{
			name: "bad scrape spec",
			cfg:  config.SchedulerConfig{ScrapeSpec: "every four hours"},
		},
		{
			name: "bad analyze spec",
			cfg:  config.SchedulerConfig{AnalyzeSpec: "61 * * * *"},
		},
		{
			name: "bad cleanup spec",
			cfg:  config.SchedulerConfig{CleanupSpec: "* * *"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(tt.cfg, nil, nil, logger.NewDefault().Logger)
			assert.Error(t, s.Start())
		})
	}
}

func TestSchedulerStartEmptySpecsIsNoop(t *testing.T) {
	s := NewScheduler(config.SchedulerConfig{}, nil, nil, logger.NewDefault().Logger)
	require.NoError(t, s.Start())
	s.Stop()
}
