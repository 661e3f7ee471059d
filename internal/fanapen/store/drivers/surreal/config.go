package surreal

import (
	"os"

	"github.com/MasFana/fanapen/internal/fanapen/store"
)

// The five settings the driver refuses to run without. Validation reports
// every missing name at once so a broken deployment is fixed in one pass.
const (
	envURL       = "SURREAL_URL"
	envNamespace = "SURREAL_NAMESPACE"
	envDatabase  = "SURREAL_DATABASE"
	envUsername  = "SURREAL_USERNAME"
	envPassword  = "SURREAL_PASSWORD"
)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// ConfigFromEnv reads the connection settings from the environment. It does
// not validate; validation happens on first use so construction stays cheap.
func ConfigFromEnv() Config {
	return Config{
		URL:       os.Getenv(envURL),
		Namespace: os.Getenv(envNamespace),
		Database:  os.Getenv(envDatabase),
		Username:  os.Getenv(envUsername),
		Password:  os.Getenv(envPassword),
	}
}

func (c Config) validate() error {
	var missing []string
	for _, kv := range []struct {
		name  string
		value string
	}{
		{envURL, c.URL},
		{envNamespace, c.Namespace},
		{envDatabase, c.Database},
		{envUsername, c.Username},
		{envPassword, c.Password},
	} {
		if kv.value == "" {
			missing = append(missing, kv.name)
		}
	}

	if len(missing) > 0 {
		return &store.ConfigError{Missing: missing}
	}
	return nil
}
