package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/specialistvlad/componentcatalog/internal/app"
)

const envPrefix = "CATALOG"

// bindFlags maps persistent flags onto viper keys. Keys use underscores so
// that CATALOG_LOG_LEVEL and a log_level entry in the config file both apply.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for _, name := range []string{"log-level", "log-format", "strict"} {
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

// loadConfig resolves the configuration from defaults, the optional config
// file, the environment and flags, in increasing order of precedence.
func loadConfig(v *viper.Viper, cfgFile string) (*app.Config, error) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("strict", false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return app.NewConfig(app.Config{
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		Strict:    v.GetBool("strict"),
	})
}
