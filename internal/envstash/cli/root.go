// Package cli implements the envstash command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"envstash/internal/envstash/cache"
	"envstash/pkg/config"
	"envstash/pkg/logger"
)

var (
	cfg        *config.Config
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "envstash",
	Short: "envstash - cached environment provisioning for batch jobs",
	Long: "envstash provisions software environments on cluster compute nodes,\n" +
		"caching packed builds on shared storage so identical environment specs\n" +
		"are restored instead of rebuilt.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Accept underscore spellings for flags that mirror config keys.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file (ENVSTASH_CONFIG when not given)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(newProvisionCmd())
	rootCmd.AddCommand(newFingerprintCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newStore creates the cache store the configuration selects.
func newStore() (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.BackendS3:
		return cache.NewS3Store(cfg)
	default:
		return cache.NewLocalStore(cfg.CacheRoot)
	}
}

// exitError prints an error the way all commands report failure.
func exitError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
