package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hello-server",
	Short: "Demo greeting servers with and without login",
	Long: `hello-server runs one of four independent demo web servers:

  static   a fixed "Hello, World!" page
  query    a page greeting the ?name= query parameter
  session  a login flow backed by an in-memory session map
  jwt      a login flow backed by signed, one-hour tokens

Configuration is read from --config (or CONFIG_PATH) and HELLO_* environment
variables. Without either the server listens on 127.0.0.1:3000.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("hello-server version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
