// Package cmd implements the ebaynet CLI commands.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/ebaynet/internal/config"
	"github.com/donaldgifford/ebaynet/pkg/ebay"
	"github.com/donaldgifford/ebaynet/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ebaynet",
		Short: "Command-line client for the eBay Browse API",
		Long: "ebaynet looks up eBay items by RESTful id, legacy id, or item group,\n" +
			"runs searches, and reports API quota against production or sandbox.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().
		String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().
		String("env", "", "eBay environment (production, sandbox)")
	rootCmd.PersistentFlags().
		String("base-url", "", "override the API gateway URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("log-level", "", "log level (debug, info, warn, error)")

	cobra.CheckErr(viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file")))
	cobra.CheckErr(viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("env")))
	cobra.CheckErr(viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))

	viper.SetEnvPrefix("EBAYNET")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(itemCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(quotaCmd())
	rootCmd.AddCommand(versionCmd())
}

// loadConfig reads the config file, if any, then applies EBAYNET_*
// environment variables and flags on top.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(viper.GetString("env_file")); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Read(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	override := func(dst *string, key string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.Ebay.AppID, "app_id")
	override(&cfg.Ebay.CertID, "cert_id")
	override(&cfg.Ebay.UserToken, "user_token")
	override(&cfg.Ebay.Environment, "environment")
	override(&cfg.Ebay.BaseURL, "base_url")
	override(&cfg.Ebay.Marketplace, "marketplace")
	override(&cfg.Logging.Level, "log_level")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *ebay.Client {
	env := cfg.Ebay.EnvironmentValue()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	opts := []ebay.Option{
		ebay.WithEnvironment(env),
		ebay.WithHTTPClient(&http.Client{Timeout: cfg.Ebay.Timeout}),
		ebay.WithLogger(log),
		ebay.WithMarketplace(cfg.Ebay.Marketplace),
	}
	if cfg.Ebay.BaseURL != "" {
		opts = append(opts, ebay.WithBaseURL(cfg.Ebay.BaseURL))
	}

	return ebay.NewClient(newAuthenticator(cfg, env), opts...)
}

func newAuthenticator(cfg *config.Config, env ebay.Environment) ebay.Authenticator {
	if cfg.Ebay.UserToken != "" {
		return ebay.StaticToken(cfg.Ebay.UserToken)
	}

	var opts []ebay.OAuthOption
	switch {
	case cfg.Ebay.TokenURL != "":
		opts = append(opts, ebay.WithTokenURL(cfg.Ebay.TokenURL))
	case cfg.Ebay.BaseURL != "":
		opts = append(opts, ebay.WithTokenURL(ebay.CustomURLService(cfg.Ebay.BaseURL).TokenURL()))
	}
	if len(cfg.Ebay.Scopes) > 0 {
		opts = append(opts, ebay.WithScopes(cfg.Ebay.Scopes...))
	}

	return ebay.NewOAuthAuthenticator(env, cfg.Ebay.AppID, cfg.Ebay.CertID, opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
