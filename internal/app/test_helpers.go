package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/testutil"
)

// SetupAppTest creates a new app instance with debug logging captured in the
// returned buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...catalog.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, cfg, modules...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("CATALOG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
