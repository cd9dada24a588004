// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AgoraHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: AGORAHUB_MONGO_URI, AGORAHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "agora_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key, shared with the membership app (must be strong in production)"},
	{Name: "session_name", Default: "agorahub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "admin_api_key", Default: "", Desc: "Bearer key for service-to-service admin calls (empty disables)"},

	// Phase timing
	{Name: "signup_duration", Default: "24h", Desc: "Length of the signup phase"},
	{Name: "contribution_duration", Default: "120h", Desc: "Length of the contribution phase"},
	{Name: "ranking_duration", Default: "24h", Desc: "Length of the ranking phase"},

	// Grouping
	{Name: "group_target_size", Default: 5, Desc: "Preferred group size when partitioning participants (3..6)"},

	// Treasury pools (seeded once, on first startup)
	{Name: "treasury_rep_pool", Default: 1_000_000, Desc: "Initial REP treasury pool"},
	{Name: "treasury_phil_pool", Default: 1_000_000, Desc: "Initial PHIL treasury pool"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, AGORAHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "AGORAHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AdminAPIKey: appValues.String("admin_api_key"),

		SignupDuration:       appValues.Duration("signup_duration", 24*time.Hour),
		ContributionDuration: appValues.Duration("contribution_duration", 120*time.Hour),
		RankingDuration:      appValues.Duration("ranking_duration", 24*time.Hour),

		GroupTargetSize: appValues.Int("group_target_size"),

		TreasuryREPPool:  int64(appValues.Int("treasury_rep_pool")),
		TreasuryPHILPool: int64(appValues.Int("treasury_phil_pool")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// AgoraHub validates the MongoDB URI format and the phase durations to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"signup_duration", appCfg.SignupDuration},
		{"contribution_duration", appCfg.ContributionDuration},
		{"ranking_duration", appCfg.RankingDuration},
	} {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.val)
		}
	}

	if appCfg.GroupTargetSize < 3 || appCfg.GroupTargetSize > 6 {
		return fmt.Errorf("group_target_size must be between 3 and 6, got %d", appCfg.GroupTargetSize)
	}
	if appCfg.TreasuryREPPool <= 0 || appCfg.TreasuryPHILPool <= 0 {
		return fmt.Errorf("treasury pools must be positive")
	}

	return nil
}
