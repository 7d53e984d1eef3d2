// Package cmd implements the sp-proxy CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/mfigueredo/amazon-sp-proxy/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "sp-proxy",
		Short: "Backend proxy for the Amazon Selling Partner API",
		Long: "sp-proxy fronts the Amazon Selling Partner API for authenticated users.\n" +
			"It manages per-user Amazon OAuth credentials (creation, caching, refresh)\n" +
			"and proxies catalog search, item, offer, and fee requests.",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initClientConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "config file path (serve, migrate)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL (client commands)")
	rootCmd.PersistentFlags().
		String("token", "", "bearer token for client commands")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(productCmd())
	rootCmd.AddCommand(credentialsCmd())
}

func initClientConfig() {
	viper.SetEnvPrefix("SPPROXY")
	viper.AutomaticEnv()

	viper.AddConfigPath("$HOME")
	viper.SetConfigType("yaml")
	viper.SetConfigName(".sp-proxy")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(
		viper.GetString("server"),
		apiclient.WithToken(viper.GetString("token")),
	)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
