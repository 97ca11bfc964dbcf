package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files under a local root directory. Stored paths
// are relative to the root so the root can move between environments.
type Store struct {
	root string
}

// NewStore creates the store and its subdirectories.
func NewStore(root string) (*Store, error) {
	for _, dir := range []string{"logos", "resumes"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

const (
	maxLogoBytes   = 2 << 20
	maxResumeBytes = 5 << 20
)

var (
	logoExts   = map[string]struct{}{".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}}
	resumeExts = map[string]struct{}{".pdf": {}, ".doc": {}, ".docx": {}}
)

// SaveLogo stores a company logo upload and returns its relative path.
func (s *Store) SaveLogo(file *multipart.FileHeader) (string, error) {
	return s.save(file, "logos", logoExts, maxLogoBytes)
}

// SaveResume stores a resume upload and returns its relative path.
func (s *Store) SaveResume(file *multipart.FileHeader) (string, error) {
	return s.save(file, "resumes", resumeExts, maxResumeBytes)
}

// ErrUnsupportedFile reports a rejected upload; the message is safe to show.
type ErrUnsupportedFile struct {
	Reason string
}

func (e *ErrUnsupportedFile) Error() string {
	return e.Reason
}

func (s *Store) save(file *multipart.FileHeader, dir string, allowed map[string]struct{}, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowed[ext]; !ok {
		return "", &ErrUnsupportedFile{Reason: fmt.Sprintf("file type %q is not allowed", ext)}
	}
	if file.Size > maxBytes {
		return "", &ErrUnsupportedFile{Reason: "file exceeds the maximum allowed size"}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	relPath := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.root, relPath))
		return "", err
	}
	return relPath, nil
}

// Delete removes a stored file. Missing files are not an error; replacements
// should not fail because the original is already gone.
func (s *Store) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
