package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/civicdata/dallaspd/pkg/buildinfo"
)

// Execute runs the dallaspd CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (fetch,
// distinct, version), loads the optional config file, and configures
// logging based on the --verbose flag.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger and config are attached to the context and accessible to
// all commands via loggerFromContext and configFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "dallaspd",
		Short:        "dallaspd fetches Dallas public-safety open data",
		Long:         `dallaspd is a client for the Dallas Open Data public-safety tables (incidents, arrests, charges, officer-involved shootings, response to resistance) with typed filters, automatic pagination, and post-fetch cleaning.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("dallaspd %s\ncommit: %s\nbuilt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/dallaspd/config.toml)")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newDistinctCmd())
	root.AddCommand(newVersionCmd())

	return root.ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dallaspd %s\n", buildinfo.Version)
			printDetail("commit: %s", buildinfo.Commit)
			printDetail("built:  %s", buildinfo.Date)
		},
	}
}
