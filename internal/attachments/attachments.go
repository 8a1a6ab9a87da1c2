package attachments

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/drstein77/quotedesk/internal/models"
)

const (
	MaxFiles    = 5
	MaxFileSize = 10 << 20
)

var (
	ErrTooManyFiles    = errors.New("too many files")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTypeMismatch    = errors.New("file type does not match extension")
)

// allowed maps a file extension to the only MIME type accepted for it.
var allowed = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// FileError reports why a single file was rejected.
type FileError struct {
	Filename string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Validate checks one file against the type and size rules.
func Validate(a models.Attachment) error {
	ext := strings.ToLower(filepath.Ext(a.Filename))
	want, ok := allowed[ext]
	if !ok {
		return &FileError{Filename: a.Filename, Err: ErrUnsupportedType}
	}

	mediaType, _, err := mime.ParseMediaType(a.ContentType)
	if err != nil {
		return &FileError{Filename: a.Filename, Err: ErrUnsupportedType}
	}
	mediaType = strings.ToLower(mediaType)
	if !isAllowedType(mediaType) {
		return &FileError{Filename: a.Filename, Err: ErrUnsupportedType}
	}
	if mediaType != want {
		return &FileError{Filename: a.Filename, Err: ErrTypeMismatch}
	}

	if a.Size > MaxFileSize {
		return &FileError{Filename: a.Filename, Err: ErrTooLarge}
	}
	return nil
}

func isAllowedType(mediaType string) bool {
	for _, t := range allowed {
		if t == mediaType {
			return true
		}
	}
	return false
}

// Set is the list of files attached to a quote request.
type Set struct {
	files []models.Attachment
}

// Add validates every file on its own and appends the accepted ones.
// Files already in the set are never dropped. The returned error combines
// one *FileError per rejected file; use Errors to split it.
func (s *Set) Add(files ...models.Attachment) error {
	var errs error
	for _, f := range files {
		if err := Validate(f); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if len(s.files) >= MaxFiles {
			errs = multierr.Append(errs, &FileError{Filename: f.Filename, Err: ErrTooManyFiles})
			continue
		}
		s.files = append(s.files, f)
	}
	return errs
}

// Files returns the accepted files.
func (s *Set) Files() []models.Attachment {
	return append([]models.Attachment(nil), s.files...)
}

func (s *Set) Len() int {
	return len(s.files)
}

// Errors splits an error returned by Add into its per-file errors.
func Errors(err error) []error {
	return multierr.Errors(err)
}
