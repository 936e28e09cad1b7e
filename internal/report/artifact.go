package report

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func DefaultArtifactDir() string {
	if v := strings.TrimSpace(os.Getenv("CARTCOMPARE_ARTIFACT_DIR")); v != "" {
		return v
	}
	return "artifacts"
}

// WriteArtifact writes a gzip-compressed JSON artifact to disk atomically.
// It returns the final file path.
func WriteArtifact(dir string, report *Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}
	if dir == "" {
		dir = DefaultArtifactDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	checksum := report.Checksum
	if checksum == "" {
		checksum = "nocsum"
	}
	name := fmt.Sprintf(
		"comparison_%s_%s_%s.json.gz",
		report.Comparison,
		report.CreatedAt.UTC().Format("20060102T150405Z"),
		checksum,
	)
	finalPath := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp.*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpPath)
		}
	}()

	gz := gzip.NewWriter(tmp)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		_ = gz.Close()
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", err
	}
	ok = true
	return finalPath, nil
}

// ReadArtifact loads a previously written artifact.
func ReadArtifact(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	var report Report
	if err := json.NewDecoder(gz).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &report, nil
}
