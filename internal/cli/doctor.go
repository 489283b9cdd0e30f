package cli

import (
	"fmt"
	"io"

	"github.com/archetype-labs/archgen/internal/config"
	"github.com/archetype-labs/archgen/internal/toolchain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the tools the generator needs are installed",
	Long: `Report whether Ruby and Bundler (required) and npm, Bower and git (used
after generation) are on PATH, and show the active settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		missing := printToolReport(w, "Required tools:", toolchain.Report(toolchain.Required...))
		printToolReport(w, "Optional tools:", toolchain.Report(toolchain.Optional...))

		fmt.Fprintln(w, "Settings:")
		fmt.Fprintf(w, "  config file: %s\n", config.FilePath())
		for _, key := range config.Keys {
			value := config.Get(key)
			if key == config.KeyGitHubToken && value != "" {
				value = "(set)"
			}
			fmt.Fprintf(w, "  %s: %s\n", key, value)
		}

		if len(missing) > 0 {
			return &toolchain.MissingDependencyError{Names: missing}
		}
		return nil
	},
}

// printToolReport prints one line per tool and returns the missing names.
func printToolReport(w io.Writer, title string, report []toolchain.Status) []string {
	fmt.Fprintln(w, title)
	var missing []string
	for _, s := range report {
		if !s.Found {
			fmt.Fprintf(w, "  [MISS] %s not found\n", s.Name)
			missing = append(missing, s.Name)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", s.Name, s.Path)
	}
	return missing
}
