// Package backup writes progress exports to a directory and prunes old ones.
package backup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = "20060102T150405Z"

// File describes one backup on disk.
type File struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

type Writer struct {
	Dir string
	now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{
		Dir: dir,
		now: time.Now,
	}
}

// Save writes data to <timestamp>-<uuid>.json and returns the file name.
func (w *Writer) Save(data []byte) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", w.now().UTC().Format(timestampLayout), uuid.New().String())
	path := filepath.Join(w.Dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	log.Printf("[BACKUP] Saved %s (%d bytes)", name, len(data))
	return name, nil
}

// List returns backups newest first. A missing directory means no backups.
func (w *Writer) List() ([]File, error) {
	entries, err := os.ReadDir(w.Dir)
	if os.IsNotExist(err) {
		return []File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:      e.Name(),
			CreatedAt: createdAt(e.Name(), info.ModTime()),
			Size:      info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

// Read returns the content of a backup by name.
func (w *Writer) Read(name string) ([]byte, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	return os.ReadFile(filepath.Join(w.Dir, name))
}

// Prune deletes backups older than retention and returns how many went.
func (w *Writer) Prune(retention time.Duration) (int64, error) {
	files, err := w.List()
	if err != nil {
		return 0, err
	}

	cutoff := w.now().Add(-retention)
	var deleted int64
	for _, f := range files {
		if !f.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.Dir, f.Name)); err != nil {
			return deleted, fmt.Errorf("failed to delete backup %s: %w", f.Name, err)
		}
		deleted++
	}
	return deleted, nil
}

// createdAt reads the timestamp prefix of a backup name, falling back to the
// file's modification time for files not written by Save.
func createdAt(name string, modTime time.Time) time.Time {
	if len(name) >= len(timestampLayout) {
		if ts, err := time.Parse(timestampLayout, name[:len(timestampLayout)]); err == nil {
			return ts
		}
	}
	return modTime
}
