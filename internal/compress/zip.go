package compress

import (
	"archive/zip"
	"io"
	"time"
)

// ZipWriter packs files into a ZIP archive.
type ZipWriter struct {
	zipWriter *zip.Writer
	modified  time.Time
}

func NewZipWriter(w io.Writer, modified time.Time) *ZipWriter {
	return &ZipWriter{
		zipWriter: zip.NewWriter(w),
		modified:  modified,
	}
}

// AddFile writes one file into the archive.
func (z *ZipWriter) AddFile(name string, data []byte) error {
	f, err := z.zipWriter.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: z.modified,
	})
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// Close closes the ZIP archive.
func (z *ZipWriter) Close() error {
	return z.zipWriter.Close()
}
