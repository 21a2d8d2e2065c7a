package controllers

import (
	"io"
	"net/http"

	"github.com/luckyegg/storefront-backend/api/responses"
	"github.com/luckyegg/storefront-backend/internal/media"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// UploadCardImage accepts a multipart "file" field, stores it, and returns
// the public URL for the card's image_url.
func UploadCardImage(svc *media.Service, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(maxUploadMB) * 1024 * 1024
		if limit > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limit+1024)
		}

		if err := r.ParseMultipartForm(limit); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "file field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload"))
			return
		}

		result, err := svc.Upload(r.Context(), data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
