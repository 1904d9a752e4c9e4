package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	err := Execute(args, &out, &logs)
	return out.String(), logs.String(), err
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "threshold")
	assert.Contains(t, out, "sum,add")
	assert.NotContains(t, out, "max", "hidden components need --all")

	out, _, err = run(t, "list", "--all", "--signature", "BinaryOp")
	require.NoError(t, err)
	assert.Contains(t, out, "max")
	assert.NotContains(t, out, "threshold")
}

func TestList_JSON(t *testing.T) {
	out, _, err := run(t, "list", "-o", "json", "-s", "filter")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "threshold", got[0]["name"])
	assert.Equal(t, "range", got[1]["name"])
}

func TestSignatures_YAML(t *testing.T) {
	out, _, err := run(t, "signatures", "-o", "yaml")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	names := make([]any, 0, len(got))
	for _, s := range got {
		names = append(names, s["display_name"])
	}
	assert.ElementsMatch(t, []any{"BinaryOp", "Filter", "Source", "Sink"}, names)
}

func TestDescribe(t *testing.T) {
	out, _, err := run(t, "describe", "threshold")
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy:")
	assert.Contains(t, out, "constructor")
	assert.Contains(t, out, "cutoff=<number>")

	_, _, err = run(t, "describe", "nothing")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown component 'nothing'")
}

func TestCreate(t *testing.T) {
	out, _, err := run(t, "create", "filter", "threshold", "cutoff=0.9", "inclusive=true")
	require.NoError(t, err)
	assert.Equal(t, "threshold(>= 0.9)\n", out)

	out, _, err = run(t, "create", "SignatureBinaryOp", "ADD")
	require.NoError(t, err)
	assert.Equal(t, "sum\n", out)
}

func TestCreate_ConfigurationError(t *testing.T) {
	_, _, err := run(t, "create", "filter", "threshold", "cutoff=bad")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "Usage For 'threshold':")
}

func TestUsageErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"list", "--nope"}},
		{"missing args", []string{"create", "filter"}},
		{"too many args", []string{"describe", "a", "b"}},
		{"bad output", []string{"list", "-o", "xml"}},
		{"bad log level", []string{"list", "--log-level", "loud"}},
		{"unknown command", []string{"explode"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestConfigSources(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("CATALOG_LOG_LEVEL", "debug")
		_, logs, err := run(t, "list")
		require.NoError(t, err)
		assert.Contains(t, logs, "Registered component.")
	})

	t.Run("environment keys with underscores", func(t *testing.T) {
		t.Setenv("CATALOG_LOG_LEVEL", "debug")
		t.Setenv("CATALOG_LOG_FORMAT", "json")
		_, logs, err := run(t, "list")
		require.NoError(t, err)
		assert.Contains(t, logs, `"msg":"Registered component."`)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nlog_format: json\n"), 0600))

		_, logs, err := run(t, "list", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, logs, `"msg":"Registered component."`)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("CATALOG_LOG_LEVEL", "debug")
		_, logs, err := run(t, "list", "--log-level", "error")
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, _, err := run(t, "list", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
