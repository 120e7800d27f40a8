package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jobrec/internal/apperr"
	"jobrec/internal/model"
	"jobrec/internal/notify"
	"jobrec/internal/storage"
	"jobrec/internal/webhook"
)

var ErrFilenameRequired = apperr.New(apperr.KindInvalidBody, "file name is required")

// UploadPointer is what the workflow receives after an upload.
type UploadPointer struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// UploadResult is returned to the caller of upload_resume.
type UploadResult struct {
	Message string `json:"message"`
}

// RelayService stores a raw resume and hands a pointer to the workflow.
type RelayService interface {
	Upload(ctx context.Context, file model.UploadedFile) (*UploadResult, error)
}

type relayService struct {
	store  storage.Storage
	poster notify.Poster
}

// NewRelayService constructs a RelayService.
func NewRelayService(store storage.Storage, poster notify.Poster) RelayService {
	return &relayService{store: store, poster: poster}
}

func (s *relayService) Upload(ctx context.Context, file model.UploadedFile) (_ *UploadResult, err error) {
	name := filepath.Base(file.Name)
	ctx, span := tracer.Start(ctx, "relay.Upload", trace.WithAttributes(
		attribute.String("resume.filename", name),
		attribute.Int("resume.size", len(file.Content)),
	))
	defer func() { endSpan(span, err) }()

	if file.Name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrFilenameRequired
	}

	if _, err := s.store.Put(ctx, name, bytes.NewReader(file.Content), storage.PutObjectOptions{
		Size:        int64(len(file.Content)),
		ContentType: file.ContentType,
		Metadata:    map[string]string{"original-filename": file.Name},
	}); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store upload", err)
	}

	loc, err := s.store.Locate(ctx, name)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to locate upload", err)
	}

	if _, err := s.poster.Post(ctx, UploadPointer{FileName: name, FilePath: loc}); err != nil {
		var se *webhook.StatusError
		if errors.As(err, &se) {
			return nil, apperr.New(apperr.KindDownstreamUnavailable, "Failed to trigger N8N workflow: "+se.Body)
		}
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, "Failed to trigger N8N workflow", err)
	}

	return &UploadResult{
		Message: fmt.Sprintf("Resume '%s' uploaded successfully and sent to N8N.", name),
	}, nil
}
