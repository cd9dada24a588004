// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS). AppConfig carries everything specific to
// AgoraHub: the MongoDB connection, the session cookie shared with the
// fronting membership application, phase timing, grouping, and the
// treasury pools the reward ledger draws from.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration. The cookie is issued by the
	// fronting membership app; both services sign with the same key.
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: agorahub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// AdminAPIKey enables service-to-service admin calls via a bearer
	// token. Empty disables the bearer path entirely.
	AdminAPIKey string

	// Phase timing. A phase stays open past its end time until a
	// participant triggers the advance.
	SignupDuration       time.Duration
	ContributionDuration time.Duration
	RankingDuration      time.Duration

	// GroupTargetSize is the preferred group size when partitioning
	// participants (clamped to 3..6).
	GroupTargetSize int

	// Treasury pools seeded on first startup. Credits draw these down;
	// an exhausted pool fails the payout.
	TreasuryREPPool  int64
	TreasuryPHILPool int64
}
