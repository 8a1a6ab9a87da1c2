package compress

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drstein77/quotedesk/internal/models"
)

var modified = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func attachments() []models.Attachment {
	return []models.Attachment{
		{Filename: "plan.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7 plan")},
		{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg bytes")},
		{Filename: "plan.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7 second plan")},
	}
}

func TestWriteAttachments_Zip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteAttachments(Zip, &buf, attachments(), modified))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	got := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		got[f.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"plan.pdf":     "%PDF-1.7 plan",
		"photo.jpg":    "jpeg bytes",
		"plan (2).pdf": "%PDF-1.7 second plan",
	}, got)
}

func TestWriteAttachments_Tar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteAttachments(Tar, &buf, attachments(), modified))

	tr := tar.NewReader(&buf)
	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
		assert.True(t, hdr.ModTime.Equal(modified))
	}
	assert.Equal(t, []string{"plan.pdf", "photo.jpg", "plan (2).pdf"}, names)
}

func TestWriteAttachments_StripsDirectories(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	files := []models.Attachment{{Filename: "../../etc/passwd.pdf", Data: []byte("x")}}
	require.NoError(t, WriteAttachments(Zip, &buf, files, modified))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "passwd.pdf", zr.File[0].Name)
}

func TestWriteAttachments_UnknownType(t *testing.T) {
	t.Parallel()

	err := WriteAttachments("rar", io.Discard, attachments(), modified)
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/zip", ContentType(Zip))
	assert.Equal(t, "application/x-tar", ContentType(Tar))
}
