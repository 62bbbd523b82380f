package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
)

const multipartMemory = 8 << 20

// Uploads stages multipart files on local disk before they are handed to the media host.
type Uploads struct {
	Dir      string
	MaxBytes int64
}

// form is a parsed multipart request along with the files staged from it.
type form struct {
	r      *http.Request
	dir    string
	staged []*media.StagedFile
}

func (u Uploads) parse(w http.ResponseWriter, r *http.Request) (*form, error) {
	if u.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, u.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, content.InvalidArgument(fmt.Sprintf("Upload exceeds the %d byte limit", tooLarge.Limit))
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, content.InvalidArgument("Request must be multipart/form-data")
		}
		return nil, content.InvalidArgument("Invalid multipart form")
	}
	dir := u.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return &form{r: r, dir: dir}, nil
}

func (f *form) value(name string) string {
	return f.r.FormValue(name)
}

// optionalValue reports whether the field was sent at all.
func (f *form) optionalValue(name string) *string {
	if f.r.MultipartForm == nil {
		return nil
	}
	values, ok := f.r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// file stages the named file. It returns nil when the field is absent.
func (f *form) file(name string) (*media.StagedFile, error) {
	src, header, err := f.r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, content.InvalidArgument(fmt.Sprintf("Invalid %s upload", name))
	}
	defer src.Close()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, content.Internal("Failed to stage upload", err)
	}
	dst, err := os.CreateTemp(f.dir, "upload-*"+strings.ToLower(filepath.Ext(header.Filename)))
	if err != nil {
		return nil, content.Internal("Failed to stage upload", err)
	}
	staged := &media.StagedFile{
		Path:         dst.Name(),
		OriginalName: filepath.Base(header.Filename),
		ContentType:  header.Header.Get("Content-Type"),
	}
	f.staged = append(f.staged, staged)

	size, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil {
		return nil, content.Internal("Failed to stage upload", copyErr)
	}
	if closeErr != nil {
		return nil, content.Internal("Failed to stage upload", closeErr)
	}
	staged.Size = size
	return staged, nil
}

// cleanup removes staged files the media host did not consume along with the
// multipart temporary files.
func (f *form) cleanup() {
	logger := logging.FromContext(f.r.Context())
	for _, s := range f.staged {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("remove staged upload", "path", s.Path, "error", err)
		}
	}
	if f.r.MultipartForm != nil {
		_ = f.r.MultipartForm.RemoveAll()
	}
}
