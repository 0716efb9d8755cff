package ciutil

import "log/slog"

// TestDatabaseURL returns the external database tests should use, or "" when
// none is configured. USERAPI_TEST_DB_URL wins over DATABASE_URL.
func TestDatabaseURL(logger *slog.Logger) string {
	url := GetEnvWithFallbacks([]string{EnvTestDBURL, EnvDatabaseURL}, "", logger)
	if url == "" && IsCI() && logger != nil {
		logger.Info("No test database configured in CI, using in-memory sqlite")
	}
	return url
}

// TestDatabaseDriver returns the driver for TestDatabaseURL.
func TestDatabaseDriver() string {
	return GetEnvWithFallbacks([]string{EnvTestDBDriver}, DefaultDBDriver, nil)
}
