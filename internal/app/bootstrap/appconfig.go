// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS); AppConfig is everything specific to VoyageHub. Values come from
// config files, VOYAGEHUB_* environment variables, or command-line flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret for signing session cookies (must be strong in production)
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL the service is reachable at; used for OAuth callbacks.
	BaseURL string

	// AdminEmail, when set, promotes (or creates a placeholder for) the
	// platform admin on startup.
	AdminEmail string
}
