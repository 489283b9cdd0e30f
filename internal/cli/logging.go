package cli

import (
	"os"

	"github.com/charmbracelet/log"
)

// setupLogging points the default logger at stderr. Unknown levels fall
// back to warn.
func setupLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetReportTimestamp(false)
	if err != nil {
		log.Warn("unknown log level, using warn", "level", level)
	}
}
