package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration. It is loaded once at startup,
// validated, and passed by value into the components that need it. Nothing
// mutates it afterwards.
type Config struct {
	AppPort string

	// Symmetric key used to sign session tokens.
	JWTSecret string

	GithubClientID     string
	GithubClientSecret string
	GithubRedirectURL  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Where the browser is sent after a successful login, with the session
	// token and public identity fields appended as query parameters.
	AppCallbackURL string

	// Pre-shared keys granting machine clients write access.
	APIKeys []string

	// Shared secret proving a request came through the trusted front door.
	TrustedClientToken string

	MongoURI      string
	MongoDatabase string
	ModCollection string

	RedisAddr     string
	RedisPassword string
}

// Load reads configuration from the environment.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_CALLBACK_URL", "https://dcs-dropzone.app/callback")
	v.SetDefault("MONGO_DATABASE", "dcs-dropzone-registry")
	v.SetDefault("MONGO_MOD_COLLECTION", "mod")

	return Config{
		AppPort: v.GetString("APP_PORT"),

		JWTSecret: v.GetString("JWT_SECRET"),

		GithubClientID:     v.GetString("GH_CLIENT_ID"),
		GithubClientSecret: v.GetString("GH_CLIENT_SECRET"),
		GithubRedirectURL:  v.GetString("GH_REDIRECT_URI"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),

		AppCallbackURL: v.GetString("APP_CALLBACK_URL"),

		APIKeys: splitKeys(v.GetString("API_KEYS")),

		TrustedClientToken: v.GetString("TRUSTED_CLIENT_TOKEN"),

		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		ModCollection: v.GetString("MONGO_MOD_COLLECTION"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
	}
}

// Validate reports every missing required value. API keys, the trusted
// client token, Google credentials and Redis are optional: the guards they
// feed reject by default when unconfigured.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"JWT_SECRET", c.JWTSecret},
		{"GH_CLIENT_ID", c.GithubClientID},
		{"GH_CLIENT_SECRET", c.GithubClientSecret},
		{"GH_REDIRECT_URI", c.GithubRedirectURL},
		{"APP_CALLBACK_URL", c.AppCallbackURL},
		{"MONGO_URI", c.MongoURI},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: missing required values: %s", strings.Join(missing, ", "))
	}

	return nil
}

// GoogleEnabled reports whether the optional Google provider is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
