package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the captured log output contains every substring.
func AssertLogged(t *testing.T, logs string, substrings ...string) {
	t.Helper()
	for _, s := range substrings {
		require.True(t, strings.Contains(logs, s), "expected log output to contain %q, got:\n%s", s, logs)
	}
}

// RequireDiscoveryError finds the recorded discovery error for the given
// module and component name.
func RequireDiscoveryError(t *testing.T, c *catalog.Catalog, module, name string) *catalog.DiscoveryError {
	t.Helper()
	for _, err := range c.DiscoveryErrors() {
		var de *catalog.DiscoveryError
		if errors.As(err, &de) && de.Module == module && de.Name == name {
			return de
		}
	}
	require.Failf(t, "discovery error not found", "module %q, component %q in %v", module, name, c.DiscoveryErrors())
	return nil
}
