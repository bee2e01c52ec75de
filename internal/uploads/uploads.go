// Package uploads persists multipart image uploads (avatars, covers and
// publication images) on local disk.
package uploads

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/google/uuid"
)

// SaveImage stores one uploaded image under dir with a generated name like
// "avatar-<uuid>.png" and returns the stored filename. Non-image uploads are
// rejected with ErrNotAnImage.
func SaveImage(file *multipart.FileHeader, dir, prefix string) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", apperrors.ErrNotAnImage
	}

	name := prefix + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Resolve maps a stored filename back to its on-disk path. The filename is
// reduced to its base so clients cannot traverse out of the uploads dir.
func Resolve(dir, filename string) (string, bool) {
	path := filepath.Join(dir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
