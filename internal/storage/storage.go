// Package storage is a thin filesystem abstraction over per-project asset
// blobs, grounded on the retrieval pack's per-conversation Manager pattern
// (one root directory, one subdirectory per tenant key, a mutex per key to
// serialize concurrent writers).
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Manager struct {
	root string

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Manager{root: root, locks: make(map[uint]*sync.Mutex)}, nil
}

func (m *Manager) lockFor(projectID uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lock, ok := m.locks[projectID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	m.locks[projectID] = lock
	return lock
}

func (m *Manager) projectDir(projectID uint) string {
	return filepath.Join(m.root, strconv.FormatUint(uint64(projectID), 10))
}

func (m *Manager) EnsureProject(projectID uint) error {
	if err := os.MkdirAll(m.projectDir(projectID), 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.]`)

// cleanName strips any character outside [A-Za-z0-9_.] and replaces spaces
// with underscores, per the upload pipeline's server-filename rule.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeNameChars.ReplaceAllString(name, "")
}

// SaveFile streams r to disk in chunkSize increments under a server
// filename of the form "<randomKey>_<cleanedOriginalName>", re-rolling the
// random key if the path collides. On any I/O error the partial file is
// removed before the error is returned.
func (m *Manager) SaveFile(projectID uint, originalName string, r io.Reader, chunkSize int) (storedName string, size int64, err error) {
	if err := m.EnsureProject(projectID); err != nil {
		return "", 0, err
	}

	lock := m.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	cleaned := cleanName(originalName)
	dir := m.projectDir(projectID)

	var path string
	for {
		candidate := uuid.NewString()[:8] + "_" + cleaned
		candidatePath := filepath.Join(dir, candidate)
		if _, statErr := os.Stat(candidatePath); os.IsNotExist(statErr) {
			storedName = candidate
			path = candidatePath
			break
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create asset file: %w", err)
	}

	if chunkSize <= 0 {
		chunkSize = 512 * 1024
	}
	buf := make([]byte, chunkSize)
	written, copyErr := io.CopyBuffer(f, r, buf)
	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		if copyErr != nil {
			return "", 0, fmt.Errorf("write asset file: %w", copyErr)
		}
		return "", 0, fmt.Errorf("close asset file: %w", closeErr)
	}

	return storedName, written, nil
}

func (m *Manager) Path(projectID uint, storedName string) string {
	return filepath.Join(m.projectDir(projectID), storedName)
}

func (m *Manager) DeleteFile(projectID uint, storedName string) error {
	path := m.Path(projectID, storedName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete asset file: %w", err)
	}
	return nil
}

func (m *Manager) DeleteProject(projectID uint) error {
	if err := os.RemoveAll(m.projectDir(projectID)); err != nil {
		return fmt.Errorf("delete project directory: %w", err)
	}
	return nil
}
