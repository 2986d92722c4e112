package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/piwi3910/isoforge/internal/model"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("project not found")

const recordExt = ".json"

// Store is the project record collaborator, keyed by project id.
type Store interface {
	Get(ctx context.Context, id string) (model.Project, error)
	Put(ctx context.Context, p model.Project) error
	GetAll(ctx context.Context) ([]model.Project, error)
	Delete(ctx context.Context, id string) error
}

// DefaultProjectsDir returns ~/.isoforge/projects.
func DefaultProjectsDir() string {
	return filepath.Join(DefaultConfigDir(), "projects")
}

// FileStore keeps one JSON file per project in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the records.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid project id %q", id)
	}
	return filepath.Join(s.dir, id+recordExt), nil
}

// Get reads the record for id.
func (s *FileStore) Get(ctx context.Context, id string) (model.Project, error) {
	if err := ctx.Err(); err != nil {
		return model.Project{}, err
	}
	path, err := s.path(id)
	if err != nil {
		return model.Project{}, err
	}
	p, err := readRecord(path)
	if errors.Is(err, os.ErrNotExist) {
		return model.Project{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return p, err
}

// Put writes p, replacing any previous record with the same id. The file
// is written to a temporary name first so readers never see a partial record.
func (s *FileStore) Put(ctx context.Context, p model.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(p.ID)
	if err != nil {
		return err
	}
	if p.Objects == nil {
		p.Objects = []model.SceneObject{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// GetAll reads every record in the directory. Unreadable files are skipped
// and reported together in the returned error alongside the good records.
func (s *FileStore) GetAll(ctx context.Context) ([]model.Project, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	var (
		out  []model.Project
		errs []error
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != recordExt {
			continue
		}
		p, err := readRecord(filepath.Join(s.dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

// Delete removes the record for id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func readRecord(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if p.Objects == nil {
		p.Objects = []model.SceneObject{}
	}
	return p, nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.Project
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.Project)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (model.Project, error) {
	if err := ctx.Err(); err != nil {
		return model.Project{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.records[id]
	if !ok {
		return model.Project{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	p.Objects = model.CloneObjects(p.Objects)
	return p, nil
}

func (m *MemoryStore) Put(ctx context.Context, p model.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		return errors.New("invalid project id \"\"")
	}
	p.Objects = model.CloneObjects(p.Objects)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[p.ID] = p
	return nil
}

func (m *MemoryStore) GetAll(ctx context.Context) ([]model.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Project, 0, len(m.records))
	for _, p := range m.records {
		p.Objects = model.CloneObjects(p.Objects)
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(m.records, id)
	return nil
}

// Recent returns up to n records ordered by UpdatedAt, newest first.
// Records that failed to load are skipped; the error is still returned.
func Recent(ctx context.Context, s Store, n int) ([]model.Project, error) {
	all, err := s.GetAll(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].UpdatedAt != all[j].UpdatedAt {
			return all[i].UpdatedAt > all[j].UpdatedAt
		}
		return all[i].ID < all[j].ID
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, err
}
