package storage

import (
	"os"
	"testing"
)

// newTestStorage returns a Storage backed by a fresh SQLite database in a
// temp directory. Tests using it are skipped unless integration tests are
// enabled, matching the driver requirements of the sqlite backend.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	s, err := NewStorage(
		Config{
			Driver:  DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
	if err != nil {
		t.Fatalf("Failed to create SQLite storage: %v", err)
	}
	return s
}
