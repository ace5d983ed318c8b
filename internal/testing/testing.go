// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/plx/internal/models"
)

// MockLibrary is a test double for [tasks.LibraryIndex], returning canned
// rows per lookup key.
type MockLibrary struct {
	// BySuffix maps a path suffix to the rows FindByPathSuffix returns.
	BySuffix map[string][]models.Track
	// ByKey maps "titleKey|artistKey" to the rows FindByNormalizedKey returns.
	ByKey map[string][]models.Track
	// Err, when set, is returned by every lookup.
	Err error
}

func (m *MockLibrary) FindByPathSuffix(suffix string) ([]models.Track, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BySuffix[suffix], nil
}

func (m *MockLibrary) FindByNormalizedKey(titleKey, artistKey string) ([]models.Track, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ByKey[titleKey+"|"+artistKey], nil
}

// MockPlaylistStore is a test double for [tasks.PlaylistStore], recording
// every mutation it receives.
type MockPlaylistStore struct {
	Existing map[string]*models.Playlist

	Created  []string
	Appended [][2]string
	Deleted  []string

	FindErr   error
	AppendErr error
	DeleteErr error
	// AppendErrAfter, when positive, lets that many appends succeed before
	// AppendErr fires.
	AppendErrAfter int

	nextID int
}

func (m *MockPlaylistStore) FindOrCreateByName(name string) (*models.Playlist, bool, error) {
	if m.FindErr != nil {
		return nil, false, m.FindErr
	}
	if p, ok := m.Existing[name]; ok {
		return p, false, nil
	}
	m.nextID++
	p := &models.Playlist{ID: fmt.Sprintf("playlist-%d", m.nextID), Name: name}
	if m.Existing == nil {
		m.Existing = map[string]*models.Playlist{}
	}
	m.Existing[name] = p
	m.Created = append(m.Created, name)
	return p, true, nil
}

func (m *MockPlaylistStore) AppendMember(playlistID, trackID string) error {
	if m.AppendErr != nil && len(m.Appended) >= m.AppendErrAfter {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, [2]string{playlistID, trackID})
	return nil
}

func (m *MockPlaylistStore) Delete(id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

// MemorySource is a test double for [tasks.Source] serving in-memory bytes.
type MemorySource struct {
	FileName string
	Content  string
	OpenErr  error
}

func (m *MemorySource) Name() string { return m.FileName }

func (m *MemorySource) Open() (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return io.NopCloser(strings.NewReader(m.Content)), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustWriteFile writes content under dir and returns the full path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}
