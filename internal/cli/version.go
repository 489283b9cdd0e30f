package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/archetype-labs/archgen/internal/branding"
	"github.com/archetype-labs/archgen/internal/config"
	"github.com/archetype-labs/archgen/internal/updater"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(w, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(w, string(out))
			return nil
		}

		fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		if versionCheck {
			return checkForUpdate(cmd)
		}
		return nil
	},
}

func checkForUpdate(cmd *cobra.Command) error {
	checker := updater.New(buildVersion, updater.WithToken(config.Get(config.KeyGitHubToken)))
	n, err := checker.Check(cmd.Context(), config.Dir(), time.Now())
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	w := cmd.OutOrStdout()
	if n.Newer {
		fmt.Fprintf(w, "A newer release is available: %s\n", n.Latest)
		if n.URL != "" {
			fmt.Fprintf(w, "  %s\n", n.URL)
		}
		return nil
	}
	fmt.Fprintln(w, "You are running the latest release.")
	return nil
}
