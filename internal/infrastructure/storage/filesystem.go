package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FilesystemStore writes run artifacts below a root directory
type FilesystemStore struct {
	fs   afero.Fs
	root string
}

// NewFilesystemStore creates an artifact store rooted at root on fs
func NewFilesystemStore(fs afero.Fs, root string) *FilesystemStore {
	return &FilesystemStore{fs: fs, root: root}
}

// SaveRun writes the four artifact files of a run into its own folder
func (s *FilesystemStore) SaveRun(_ context.Context, a entities.RunArtifacts) (entities.SavedPaths, error) {
	keys := a.Paths()
	saved := entities.SavedPaths{
		Outdir:      s.resolve(keys.Outdir),
		SignalsPath: s.resolve(keys.SignalsPath),
		RunPath:     s.resolve(keys.RunPath),
		ReportPath:  s.resolve(keys.ReportPath),
		NotesPath:   s.resolve(keys.NotesPath),
	}

	if err := s.fs.MkdirAll(saved.Outdir, dirPermissions); err != nil {
		return entities.SavedPaths{}, fmt.Errorf("failed to create run folder: %w", err)
	}

	files := []struct {
		path    string
		content []byte
	}{
		{saved.SignalsPath, a.Signals},
		{saved.RunPath, a.Run},
		{saved.ReportPath, []byte(a.Report)},
		{saved.NotesPath, []byte(a.NotesMarkdown)},
	}
	for _, f := range files {
		if err := afero.WriteFile(s.fs, f.path, f.content, filePermissions); err != nil {
			return entities.SavedPaths{}, fmt.Errorf("failed to write %s: %w", filepath.Base(f.path), err)
		}
	}

	return saved, nil
}

// SaveRaw writes one diagnostic file into folder
func (s *FilesystemStore) SaveRaw(_ context.Context, folder, name, content string) (string, error) {
	dir := s.resolve(folder)
	if err := s.fs.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create run folder: %w", err)
	}

	p := filepath.Join(dir, name)
	if err := afero.WriteFile(s.fs, p, []byte(content), filePermissions); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return p, nil
}

func (s *FilesystemStore) resolve(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// FileHistory is a JSON Lines history log on fs
type FileHistory struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFileHistory creates a history log stored at path
func NewFileHistory(fs afero.Fs, path string) *FileHistory {
	return &FileHistory{fs: fs, path: path}
}

// Append adds one entry as a single JSON line
func (h *FileHistory) Append(_ context.Context, entry entities.HistoryEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.fs.MkdirAll(filepath.Dir(h.path), dirPermissions); err != nil {
		return fmt.Errorf("failed to create history folder: %w", err)
	}

	f, err := h.fs.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. Lines that do not decode are
// skipped.
func (h *FileHistory) Recent(_ context.Context, n int) ([]entities.HistoryEntry, error) {
	if n <= 0 {
		return []entities.HistoryEntry{}, nil
	}

	h.mu.Lock()
	data, err := afero.ReadFile(h.fs, h.path)
	h.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var all []entities.HistoryEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry entities.HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		all = append(all, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan history: %w", err)
	}

	out := make([]entities.HistoryEntry, 0, min(n, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
