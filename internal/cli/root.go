package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/archetype-labs/archgen/internal/branding"
	"github.com/archetype-labs/archgen/internal/config"
	"github.com/archetype-labs/archgen/internal/updater"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var skipInstall bool

func init() {
	rootCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not run npm and bower install after generating")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a Jekyll site wired with the Archetype Sass framework
in the current directory. It asks a few questions, then writes templates, the default
Jekyll content and pinned revisions of HTML5 Boilerplate, Archetype and Style-Docs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		setupLogging(config.Get(config.KeyLogLevel))

		// Banner from the last release check; never touches the network.
		if cmd.Name() != "version" {
			updater.PrintBanner(os.Stderr, config.Dir(), buildVersion)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		skip := skipInstall || config.GetBool(config.KeySkipInstall)
		g, err := newGenerator(dir, skip, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return g.run(cmd.Context())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	}
	return err
}
