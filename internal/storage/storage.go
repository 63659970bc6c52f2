package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "shopapi/internal/errors"
)

// MaxImageBytes caps uploaded images at 2048 KB.
const MaxImageBytes = 2048 * 1024

// Upload is a validated image ready to be written to a store.
type Upload struct {
	Data []byte
	Ext  string
}

// Store persists uploaded files and returns their relative path.
type Store interface {
	Save(dir string, up *Upload) (path string, err error)
	Remove(path string) error
}

// ReadImage reads and validates a multipart image upload. Violations are
// reported as field errors on the given field name.
func ReadImage(fh *multipart.FileHeader, field string) (*Upload, error) {
	fieldName := strings.ReplaceAll(field, "_", " ")
	if fh.Size > MaxImageBytes {
		return nil, apperrors.NewValidationError(field,
			fmt.Sprintf("The %s field must not be greater than 2048 kilobytes.", fieldName))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, apperrors.NewValidationError(field,
			fmt.Sprintf("The %s field must not be greater than 2048 kilobytes.", fieldName))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperrors.NewValidationError(field,
			fmt.Sprintf("The %s field must be an image.", fieldName))
	}

	return &Upload{Data: data, Ext: mtype.Extension()}, nil
}

// LocalStore writes uploads to a directory on the local filesystem.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes the upload under <root>/<dir>/<uuid><ext> and returns the
// path relative to the store root.
func (s *LocalStore) Save(dir string, up *Upload) (string, error) {
	rel := filepath.Join(dir, uuid.New().String()+up.Ext)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(abs, up.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Remove deletes a previously saved upload. A missing file is not an error.
func (s *LocalStore) Remove(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
