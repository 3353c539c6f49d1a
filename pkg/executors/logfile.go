package executors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// updateLogFile is the on-disk shape of a persisted run. Wrapping the slice
// keeps room for metadata without breaking old files.
type updateLogFile struct {
	Logs []UpdateLog `yaml:"logs"`
}

// SaveUpdateLogs writes a run's update logs as YAML. The engine itself keeps
// no durable state; this file is what a later undo reads.
func SaveUpdateLogs(path string, logs []UpdateLog) error {
	data, err := yaml.Marshal(updateLogFile{Logs: logs})
	if err != nil {
		return fmt.Errorf("failed to encode update logs: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write update log file: %w", err)
	}
	return nil
}

// LoadUpdateLogs reads a previously saved run.
func LoadUpdateLogs(path string) ([]UpdateLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read update log file: %w", err)
	}

	var file updateLogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse update log file: %w", err)
	}
	if len(file.Logs) == 0 {
		return nil, fmt.Errorf("update log file %s has no entries", path)
	}
	return file.Logs, nil
}
