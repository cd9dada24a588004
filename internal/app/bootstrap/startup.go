// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/engine"
	ledgerstore "github.com/dalemusser/agorahub/internal/app/store/ledger"
	meetingstore "github.com/dalemusser/agorahub/internal/app/store/meetings"
	memberstore "github.com/dalemusser/agorahub/internal/app/store/members"
	"github.com/dalemusser/agorahub/internal/app/system/metrics"
	"github.com/dalemusser/agorahub/internal/app/system/roster"
)

// Built during Startup, consumed by BuildHandler. WAFFLE guarantees
// Startup completes before BuildHandler runs.
var (
	meetingEngine   *engine.Engine
	metricsRegistry *prometheus.Registry
)

// Startup builds the lifecycle engine over its Mongo-backed collaborators
// and restores the meeting arena from the store, so every meeting that
// was live before a restart is servable again before the HTTP handler
// comes up.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	metricsRegistry = prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	meetingEngine = engine.New(engine.Config{
		Store:  meetingstore.New(deps.MongoDatabase),
		Gate:   memberstore.New(deps.MongoDatabase),
		Roster: roster.New(appCfg.GroupTargetSize),
		Ledger: ledgerstore.New(deps.MongoDatabase),
		Durations: engine.Durations{
			Signup:       appCfg.SignupDuration,
			Contribution: appCfg.ContributionDuration,
			Ranking:      appCfg.RankingDuration,
		},
		Logger:  logger,
		Metrics: metrics.New(metricsRegistry),
	})

	if err := meetingEngine.Restore(ctx); err != nil {
		return fmt.Errorf("restore meetings: %w", err)
	}

	logger.Info("meeting engine restored",
		zap.Int("meetings", len(meetingEngine.ListMeetings())))
	return nil
}
