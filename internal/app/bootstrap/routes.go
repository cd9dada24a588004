// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	balancesfeature "github.com/dalemusser/agorahub/internal/app/features/balances"
	healthfeature "github.com/dalemusser/agorahub/internal/app/features/health"
	meetingsfeature "github.com/dalemusser/agorahub/internal/app/features/meetings"
	"github.com/dalemusser/agorahub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed, so the engine built in Startup is
// ready here. AgoraHub is a JSON API: it mounts the health endpoint, the
// Prometheus scrape endpoint, the meeting lifecycle routes, and the
// balance views, all behind the shared-session auth middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, appCfg.AdminAPIKey, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the caller (session cookie or
	// bearer API key) into the request context for every route.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint over the registry built in Startup.
	r.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))

	// Meeting lifecycle: signup, advance, contributions, rankings.
	meetingsHandler := meetingsfeature.NewHandler(meetingEngine, logger)
	r.Mount("/meetings", meetingsfeature.Routes(meetingsHandler, sessionMgr))

	// Token balance views.
	balancesHandler := balancesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/balances", balancesfeature.Routes(balancesHandler, sessionMgr))

	return r, nil
}
