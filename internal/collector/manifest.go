// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk record of a tracking run: the parameters that
// produced the snapshot files and the run outcome. The operator can reload
// a manifest later to locate and merge the run's CSVs without remembering
// file names.
type Manifest struct {
	Run Summary `yaml:"run"`
}

// manifestName returns the manifest file name for a run ID.
func manifestName(runID string) string {
	return fmt.Sprintf("run_%s.yaml", runID)
}

// WriteManifest saves the run summary as YAML next to the snapshot files
// and returns the manifest path.
func WriteManifest(dir string, summary Summary) (string, error) {
	m := Manifest{Run: summary}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling run manifest: %w", err)
	}
	path := filepath.Join(dir, manifestName(summary.RunID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing run manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a previously saved run manifest from disk.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing run manifest: %w", err)
	}
	return &m, nil
}
