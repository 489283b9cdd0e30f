package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/archetype-labs/archgen/internal/answers"
	"github.com/archetype-labs/archgen/internal/plan"
	"github.com/spf13/cobra"
)

var (
	planAnswers string
	planDate    string
)

func init() {
	planCmd.Flags().StringVar(&planAnswers, "answers", "", "YAML answers file (required)")
	planCmd.Flags().StringVar(&planDate, "date", "", "Run date as YYYY-MM-DD (default today)")
	_ = planCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the generation plan for an answers file",
	Long: `Load answers from a YAML file and print every step the generator would run,
with the condition that included it. Nothing is written or fetched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := parsePlanDate(planDate, time.Now())
		if err != nil {
			return err
		}

		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		a, err := answers.LoadFile(planAnswers, filepath.Base(dir))
		if err != nil {
			return err
		}

		plan.Print(cmd.OutOrStdout(), plan.Build(a, now))
		return nil
	},
}

// parsePlanDate parses s as a plan date, returning now when s is empty.
func parsePlanDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(plan.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
