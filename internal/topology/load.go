package topology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSnapshot reads a topology snapshot from a JSON or YAML file. The format
// is chosen by extension: .yaml/.yml parse as YAML, everything else as JSON.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snap Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
	}

	if snap.Services == nil {
		return nil, fmt.Errorf("snapshot %s: missing services list", path)
	}
	return &snap, nil
}
