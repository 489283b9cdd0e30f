package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/archetype-labs/archgen/internal/branding"
)

const noticeFile = "release-check.json"

// Notice is the stored result of the last release check.
type Notice struct {
	Latest    string    `json:"latest"`
	Current   string    `json:"current"`
	CheckedAt time.Time `json:"checked_at"`
	Newer     bool      `json:"newer"`
	URL       string    `json:"url,omitempty"`
}

// LoadNotice reads the stored notice. A missing file yields nil, nil.
func LoadNotice(configDir string) (*Notice, error) {
	data, err := os.ReadFile(filepath.Join(configDir, noticeFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading release notice: %w", err)
	}
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parsing release notice: %w", err)
	}
	return &n, nil
}

// SaveNotice writes n under configDir.
func SaveNotice(configDir string, n *Notice) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling release notice: %w", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, noticeFile), data, 0644); err != nil {
		return fmt.Errorf("writing release notice: %w", err)
	}
	return nil
}

// PrintBanner prints an upgrade hint when the stored notice reports a newer
// release than running. It never touches the network.
func PrintBanner(w io.Writer, configDir, running string) {
	n, err := LoadNotice(configDir)
	if err != nil || n == nil || !n.Newer {
		return
	}
	// A notice written by an older binary may be out of date.
	if newer, err := IsUpdateAvailable(running, n.Latest); err != nil || !newer {
		return
	}
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", running, n.Latest)
	if n.URL != "" {
		fmt.Fprintf(w, "    %s\n", n.URL)
	}
	fmt.Fprintf(w, "    Run `%s version --check` to refresh this notice\n\n", branding.CLIName())
}
