package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/isoforge/internal/model"
)

// BackupVersion is written to every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Projects  []model.Project `json:"projects"`
}

// ExportAllData writes the config and every project in the store to a
// single JSON file at exportPath.
func ExportAllData(ctx context.Context, exportPath string, config model.AppConfig, store Store) error {
	projects, err := store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read projects: %w", err)
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Projects:  projects,
	}
	if backup.Projects == nil {
		backup.Projects = []model.Project{}
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ReadBackup parses a backup file without applying it.
func ReadBackup(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.Config = backup.Config.Normalize()
	return backup, nil
}

// ImportAllData reads a backup and stores every project whose id is not
// already present. It returns the backup's config for the caller to apply
// and the number of projects added.
func ImportAllData(ctx context.Context, importPath string, store Store) (model.AppConfig, int, error) {
	backup, err := ReadBackup(importPath)
	if err != nil {
		return model.AppConfig{}, 0, err
	}
	added := 0
	for _, p := range backup.Projects {
		if p.ID == "" {
			continue
		}
		_, err := store.Get(ctx, p.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return backup.Config, added, fmt.Errorf("failed to check project %s: %w", p.ID, err)
		}
		if err := store.Put(ctx, p); err != nil {
			return backup.Config, added, fmt.Errorf("failed to import project %s: %w", p.ID, err)
		}
		added++
	}
	return backup.Config, added, nil
}
