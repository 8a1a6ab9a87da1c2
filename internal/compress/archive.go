package compress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/drstein77/quotedesk/internal/models"
)

const (
	Zip = "zip"
	Tar = "tar"
)

// ArchiveWriter is implemented by ZipWriter and TarWriter.
type ArchiveWriter interface {
	AddFile(name string, data []byte) error
	Close() error
}

// NewArchiveWriter returns the writer for the given archive type.
func NewArchiveWriter(archiveType string, w io.Writer, modified time.Time) (ArchiveWriter, error) {
	switch archiveType {
	case Zip:
		return NewZipWriter(w, modified), nil
	case Tar:
		return NewTarWriter(w, modified), nil
	default:
		return nil, fmt.Errorf("unsupported archive type %q", archiveType)
	}
}

// ContentType returns the MIME type of an archive type.
func ContentType(archiveType string) string {
	if archiveType == Tar {
		return "application/x-tar"
	}
	return "application/zip"
}

// WriteAttachments packs the attachments into one archive. Duplicate file
// names get a numeric suffix so no file is shadowed.
func WriteAttachments(archiveType string, w io.Writer, files []models.Attachment, modified time.Time) error {
	aw, err := NewArchiveWriter(archiveType, w, modified)
	if err != nil {
		return err
	}

	used := make(map[string]int, len(files))
	for _, f := range files {
		if err := aw.AddFile(uniqueName(filepath.Base(f.Filename), used), f.Data); err != nil {
			aw.Close()
			return fmt.Errorf("failed to add %s to archive: %w", f.Filename, err)
		}
	}
	return aw.Close()
}

func uniqueName(name string, used map[string]int) string {
	candidate := name
	ext := filepath.Ext(name)
	for i := 2; used[candidate] > 0; i++ {
		candidate = fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), i, ext)
	}
	used[candidate]++
	return candidate
}
