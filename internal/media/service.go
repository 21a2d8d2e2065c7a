package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/luckyegg/storefront-backend/pkg/config"
	pkgerrors "github.com/luckyegg/storefront-backend/pkg/errors"
	"github.com/luckyegg/storefront-backend/pkg/logger"
)

// allowedTypes maps accepted image MIME types to the object extension used
// in the bucket.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type uploader interface {
	Upload(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
}

// UploadResult describes the stored object.
type UploadResult struct {
	ObjectKey   string `json:"object_key"`
	PublicURL   string `json:"public_url"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
}

// Service validates card images and stores them in the public bucket. The
// content type comes from sniffing the bytes, never from the client's claim.
type Service struct {
	storage uploader
	cfg     config.MediaConfig
	logg    *logger.Logger
}

func NewService(storage uploader, cfg config.MediaConfig, logg *logger.Logger) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage uploader required")
	}
	return &Service{storage: storage, cfg: cfg, logg: logg}, nil
}

// Upload stores one image and returns its public URL. Transient storage
// failures are retried with exponential backoff before giving up.
func (s *Service) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}

	maxBytes := s.cfg.MaxUploadMB * 1024 * 1024
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds %dMB limit", s.cfg.MaxUploadMB))
	}

	detected := mimetype.Detect(data)
	ext, ok := allowedTypes[detected.String()]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported file type %s", detected.String())).
			WithDetails(map[string]any{"allowed": allowedMimeList()})
	}

	object := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	var publicURL string
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		url, err := s.storage.Upload(ctx, "", object, detected.String(), bytes.NewReader(data))
		if err != nil {
			return retry.RetryableError(err)
		}
		publicURL = url
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading image")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "object", object), "card image uploaded")
	}

	return &UploadResult{
		ObjectKey:   object,
		PublicURL:   publicURL,
		ContentType: detected.String(),
		SizeBytes:   len(data),
	}, nil
}

func allowedMimeList() []string {
	list := make([]string, 0, len(allowedTypes))
	for mime := range allowedTypes {
		list = append(list, mime)
	}
	return list
}
