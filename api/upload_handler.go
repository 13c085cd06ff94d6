package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
	"github.com/mkobayashi-dev/portfolio-site-backend/storage"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *storage.Uploader
}

func newUploadHandler(uploader *storage.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// UploadResponse is returned after a successful upload. The caller still
// has to attach the URL to a project or profile in a separate mutation.
type UploadResponse struct {
	URL     string `json:"url"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// upload accepts a multipart payload with `file`, `bucket` and `path`
// fields. Session verification has already happened in the middleware, so
// nothing touches the storage backend for unauthenticated calls.
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Bound the multipart parse a little above the upload limit so the
		// size violation surfaces as FileTooLarge, not a parse failure.
		r.Body = http.MaxBytesReader(w, r.Body, h.uploader.MaxBytes()*2)

		if err := r.ParseMultipartForm(h.uploader.MaxBytes()); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewFileTooLargeError(r.ContentLength, h.uploader.MaxBytes()))
				return
			}
			h.logger.Error().Err(err).Msg("Failed to parse multipart form")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewNoFileProvidedError())
			return
		}
		defer file.Close()

		bucket := r.FormValue("bucket")
		if bucket == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("bucket"))
			return
		}
		pathPrefix := r.FormValue("path")

		url, err := h.uploader.Upload(r.Context(), bucket, pathPrefix, storage.Incoming{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, UploadResponse{
			URL:     url,
			Success: true,
			Message: "file uploaded successfully",
		})
	}
}
