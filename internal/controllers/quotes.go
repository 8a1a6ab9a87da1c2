package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/drstein77/quotedesk/internal/attachments"
	"github.com/drstein77/quotedesk/internal/compress"
	"github.com/drstein77/quotedesk/internal/middleware"
	"github.com/drstein77/quotedesk/internal/models"
	"github.com/drstein77/quotedesk/internal/quote"
	"github.com/drstein77/quotedesk/internal/storage"
)

const (
	maxFormMemory = 8 << 20
	// room for a few files past the limit so they get a per-file error
	// instead of a bare 413
	maxExtraFiles  = 3
	maxRequestSize = (attachments.MaxFiles+maxExtraFiles)*attachments.MaxFileSize + 1<<20
)

func (h *BaseController) postQuote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	contact := models.Contact{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Company: r.FormValue("company"),
		Message: r.FormValue("message"),
	}

	files, err := readFiles(r.MultipartForm.File["files"])
	if err != nil {
		h.log.Error("Failed to read uploaded files", zap.Error(err))
		writeError(w, http.StatusBadRequest, "failed to read uploaded files")
		return
	}

	q, err := h.quotes.Submit(r.Context(), h.sessionBasket(r), contact, files)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.NewQuoteReceipt(*q))
}

func (h *BaseController) writeSubmitError(w http.ResponseWriter, err error) {
	var fileErr *attachments.FileError
	switch {
	case errors.Is(err, quote.ErrSubmitFailed):
		writeError(w, http.StatusBadGateway, "quote request could not be sent, please retry")
	case errors.Is(err, quote.ErrInvalidContact), errors.As(err, &fileErr):
		errs := multierr.Errors(err)
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		writeError(w, http.StatusBadRequest, msgs...)
	default:
		h.log.Error("Failed to submit quote request", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// readFiles loads the uploaded parts. Files over the size limit are not
// read; their declared size is enough for validation to reject them.
func readFiles(headers []*multipart.FileHeader) ([]models.Attachment, error) {
	files := make([]models.Attachment, 0, len(headers))
	for _, fh := range headers {
		a := models.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		if fh.Size <= attachments.MaxFileSize {
			data, err := readFile(fh)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fh.Filename, err)
			}
			a.Data = data
		}
		files = append(files, a)
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (h *BaseController) getAttachments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, err := h.storage.GetQuote(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "quote request not found")
			return
		}
		h.log.Error("Failed to load quote request", zap.String("quote_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quote request")
		return
	}

	archiveType := middleware.ArchiveType(r.Context())
	var buf bytes.Buffer
	if err := compress.WriteAttachments(archiveType, &buf, q.Attachments, q.CreatedAt); err != nil {
		h.log.Error("Failed to build archive", zap.String("quote_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", compress.ContentType(archiveType))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.%s"`, q.ID, archiveType))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
