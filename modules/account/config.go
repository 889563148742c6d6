package account

// Config holds the account module settings.
type Config struct {
	// FrontendURL is where the OAuth dance lands after the callback. The
	// module only ever appends a path to it, so no trailing slash.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}
