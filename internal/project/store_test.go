package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/isoforge/internal/model"
)

func sampleProject(id string, updated int64) model.Project {
	return model.Project{
		ID:   id,
		Name: "Project " + id,
		Objects: []model.SceneObject{{
			ID: "cube-1", Type: model.ShapeCube, Position: model.Vec3{X: 1, Y: 2},
			Size: model.UnitSize, Color: "#8b5cf6",
		}},
		CreatedAt: 1,
		UpdatedAt: updated,
	}
}

func stores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "projects"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return map[string]Store{"file": fs, "memory": NewMemoryStore()}
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			p := sampleProject("project-a", 10)
			if err := s.Put(ctx, p); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, err := s.Get(ctx, "project-a")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Name != p.Name || got.UpdatedAt != 10 {
				t.Errorf("unexpected record %+v", got)
			}
			if len(got.Objects) != 1 || got.Objects[0].Position != (model.Vec3{X: 1, Y: 2}) {
				t.Errorf("objects not round-tripped: %+v", got.Objects)
			}

			p.Name = "renamed"
			if err := s.Put(ctx, p); err != nil {
				t.Fatalf("second Put failed: %v", err)
			}
			got, _ = s.Get(ctx, "project-a")
			if got.Name != "renamed" {
				t.Errorf("expected last write to win, got %q", got.Name)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "project-missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if err := s.Delete(ctx, "project-missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound on delete, got %v", err)
			}
		})
	}
}

func TestStoreGetAllAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"p1", "p2", "p3"} {
				if err := s.Put(ctx, sampleProject(id, 1)); err != nil {
					t.Fatal(err)
				}
			}
			all, err := s.GetAll(ctx)
			if err != nil {
				t.Fatalf("GetAll failed: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 records, got %d", len(all))
			}
			if err := s.Delete(ctx, "p2"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			all, _ = s.GetAll(ctx)
			if len(all) != 2 {
				t.Errorf("expected 2 records after delete, got %d", len(all))
			}
		})
	}
}

func TestStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, sampleProject("p1", 1)); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestMemoryStoreCopiesObjects(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p := sampleProject("p1", 1)
	if err := s.Put(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Objects[0].Color = "#000000"
	got, _ := s.Get(ctx, "p1")
	if got.Objects[0].Color != "#8b5cf6" {
		t.Error("stored record should not alias the caller's slice")
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if err := s.Put(context.Background(), sampleProject(id, 1)); err == nil {
			t.Errorf("expected error for id %q", id)
		}
	}
}

func TestFileStoreSkipsCorruptRecords(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, sampleProject("good", 1)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "bad.json"), []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	all, err := s.GetAll(ctx)
	if err == nil {
		t.Error("expected an error describing the corrupt record")
	}
	if len(all) != 1 || all[0].ID != "good" {
		t.Errorf("expected only the good record, got %+v", all)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(context.Background(), sampleProject("p1", 1)); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 || entries[0].Name() != "p1.json" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i := 1; i <= 12; i++ {
		id := "p" + string(rune('a'+i))
		if err := s.Put(ctx, sampleProject(id, int64(i*100))); err != nil {
			t.Fatal(err)
		}
	}
	recent, err := Recent(ctx, s, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 records, got %d", len(recent))
	}
	if recent[0].UpdatedAt != 1200 || recent[9].UpdatedAt != 300 {
		t.Errorf("unexpected order: first=%d last=%d", recent[0].UpdatedAt, recent[9].UpdatedAt)
	}
}
