package uploads

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
)

func fileHeader(t *testing.T, filename, contentType string) *multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return fh
}

func TestSaveImageStoresWithGeneratedName(t *testing.T) {
	dir := t.TempDir()

	name, err := SaveImage(fileHeader(t, "Photo.PNG", "image/png"), dir, "avatar")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if !strings.HasPrefix(name, "avatar-") || !strings.HasSuffix(name, ".png") {
		t.Errorf("unexpected stored name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveImageNamesAreUnique(t *testing.T) {
	dir := t.TempDir()

	a, err := SaveImage(fileHeader(t, "x.png", "image/png"), dir, "pub")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	b, err := SaveImage(fileHeader(t, "x.png", "image/png"), dir, "pub")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if a == b {
		t.Errorf("two uploads of the same file collided on %q", a)
	}
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	_, err := SaveImage(fileHeader(t, "notes.txt", "text/plain"), t.TempDir(), "avatar")
	if !errors.Is(err, apperrors.ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestResolveFindsStoredFile(t *testing.T) {
	dir := t.TempDir()
	name, err := SaveImage(fileHeader(t, "x.png", "image/png"), dir, "avatar")
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	path, ok := Resolve(dir, name)
	if !ok {
		t.Fatal("stored file did not resolve")
	}
	if filepath.Dir(path) != dir {
		t.Errorf("resolved outside dir: %q", path)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, ok := Resolve(t.TempDir(), "nope.png"); ok {
		t.Fatal("missing file resolved")
	}
}

func TestResolveStripsTraversal(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "..", "secret.txt")
	if err := os.WriteFile(secret, []byte("s"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() { os.Remove(secret) })

	if _, ok := Resolve(dir, "../secret.txt"); ok {
		t.Fatal("path traversal escaped the uploads dir")
	}
}
