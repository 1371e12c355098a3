// Package production exports a session's output/history stream to
// durable storage, for a workout log a user can replay or archive after
// the session ends.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/ironloop/internal/core"
)

// HistoryExport is the on-disk shape of an exported output log: the
// session identity plus every OutputStatement recorded, in emission
// order.
type HistoryExport struct {
	SessionID string                `json:"session_id" yaml:"session_id"`
	Entries   []core.OutputStatement `json:"entries" yaml:"entries"`
}

// JSONPersister is a file-based exporter using JSON serialization.
//
// Grounded in the teacher's JSONPersister (internal/production/persister.go),
// generalized from a MachineSnapshot to a HistoryExport.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, export HistoryExport) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	fn := filepath.Join(p.dir, export.SessionID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(ctx context.Context, sessionID string) (HistoryExport, error) {
	fn := filepath.Join(p.dir, sessionID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return HistoryExport{}, fmt.Errorf("session %q: %w", sessionID, os.ErrNotExist)
		}
		return HistoryExport{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var export HistoryExport
	if err := json.Unmarshal(data, &export); err != nil {
		return HistoryExport{}, fmt.Errorf("json unmarshal: %w", err)
	}
	export.SessionID = sessionID
	return export, nil
}

// YAMLPersister is a file-based exporter using YAML serialization — the
// human-readable format a user inspecting their own workout log reaches
// for first.
//
// Grounded in the teacher's YAMLPersister (internal/production/persister.go),
// the teacher's own gopkg.in/yaml.v3 dependency kept for exactly this
// concern.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, export HistoryExport) error {
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	fn := filepath.Join(p.dir, export.SessionID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, sessionID string) (HistoryExport, error) {
	fn := filepath.Join(p.dir, sessionID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return HistoryExport{}, fmt.Errorf("session %q: %w", sessionID, os.ErrNotExist)
		}
		return HistoryExport{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var export HistoryExport
	if err := yaml.Unmarshal(data, &export); err != nil {
		return HistoryExport{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	export.SessionID = sessionID
	return export, nil
}
