package compress

import (
	"archive/tar"
	"io"
	"time"
)

// TarWriter packs files into a TAR archive.
type TarWriter struct {
	tw       *tar.Writer
	modified time.Time
}

func NewTarWriter(w io.Writer, modified time.Time) *TarWriter {
	return &TarWriter{
		tw:       tar.NewWriter(w),
		modified: modified,
	}
}

// AddFile writes one regular file into the archive.
func (t *TarWriter) AddFile(name string, data []byte) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(data)),
		ModTime:  t.modified,
	}
	if err := t.tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := t.tw.Write(data)
	return err
}

// Close writes the TAR footer.
func (t *TarWriter) Close() error {
	return t.tw.Close()
}
