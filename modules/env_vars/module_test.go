package env_vars

import (
	"context"
	"testing"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/settings"
	"github.com/specialistvlad/componentcatalog/modules/operator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	t.Setenv("CATALOG_TEST_ALPHA", "1")
	t.Setenv("CATALOG_TEST_BETA", "two")

	c := catalog.New(
		catalog.WithStrictRegistration(),
		catalog.WithArgumentParser(settings.NewParser()),
	)
	require.NoError(t, c.RegisterModule(&Module{}))
	ctx := context.Background()

	t.Run("prefix", func(t *testing.T) {
		src, err := catalog.Create[operator.Source](ctx, c, operator.SignatureSource, "env", "prefix=CATALOG_TEST_")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"CATALOG_TEST_ALPHA": "1",
			"CATALOG_TEST_BETA":  "two",
		}, src.Records())
	})

	t.Run("strip", func(t *testing.T) {
		src, err := catalog.Create[operator.Source](ctx, c, operator.SignatureSource, "ENVIRONMENT", "prefix=CATALOG_TEST_ strip=true")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ALPHA": "1", "BETA": "two"}, src.Records())
	})

	t.Run("records are copies", func(t *testing.T) {
		src, err := catalog.Create[operator.Source](ctx, c, operator.SignatureSource, "env", "prefix=CATALOG_TEST_")
		require.NoError(t, err)
		src.Records()["CATALOG_TEST_ALPHA"] = "changed"
		assert.Equal(t, "1", src.Records()["CATALOG_TEST_ALPHA"])
	})

	t.Run("requires context", func(t *testing.T) {
		d, ok := c.FindComponent("env", operator.SignatureSource)
		require.True(t, ok)
		assert.True(t, d.RequiresContext())
		//nolint:staticcheck // a nil context is the fault under test
		assert.Panics(t, func() { _, _ = c.CreateInstance(nil, operator.SignatureSource, "env", "") })
	})
}
