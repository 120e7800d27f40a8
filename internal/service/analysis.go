package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jobrec/internal/apperr"
	"jobrec/internal/extract"
	"jobrec/internal/model"
	"jobrec/internal/notify"
)

// StatusAnalyzed is reported once the resume is structured and the
// notification has been handed to the dispatcher.
const StatusAnalyzed = "analyzed; notification dispatched"

var ErrIdentityRequired = apperr.New(apperr.KindInvalidBody, "identity is required")

// ResumeStructurer turns resume text into structured fields.
type ResumeStructurer interface {
	Structure(ctx context.Context, text string) (model.StructuredResume, error)
}

// Notifier delivers a notification without reporting the outcome.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification)
}

// AnalyzeInput is one analyze_resume call. Identity is the address the
// workflow reports matching jobs to.
type AnalyzeInput struct {
	File     model.UploadedFile
	Identity string
}

// AnalyzeResult is returned to the caller of analyze_resume.
type AnalyzeResult struct {
	Filename   string   `json:"filename"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Status     string   `json:"status"`
}

// AnalysisService extracts, structures and forwards an uploaded resume.
type AnalysisService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeResult, error)
}

type analysisService struct {
	structurer  ResumeStructurer
	notifier    Notifier
	rapidAPIKey string
}

// NewAnalysisService constructs an AnalysisService. rapidAPIKey is forwarded
// to the workflow with each notification when set.
func NewAnalysisService(structurer ResumeStructurer, notifier Notifier, rapidAPIKey string) AnalysisService {
	return &analysisService{structurer: structurer, notifier: notifier, rapidAPIKey: rapidAPIKey}
}

func (s *analysisService) Analyze(ctx context.Context, in AnalyzeInput) (_ *AnalyzeResult, err error) {
	ctx, span := tracer.Start(ctx, "analysis.Analyze", trace.WithAttributes(
		attribute.String("resume.filename", in.File.Name),
		attribute.Int("resume.size", len(in.File.Content)),
	))
	defer func() { endSpan(span, err) }()

	if in.Identity == "" {
		return nil, ErrIdentityRequired
	}

	kind, err := extract.KindFromFilename(in.File.Name)
	if err != nil {
		return nil, err
	}

	text, err := extract.Extract(in.File.Content, kind)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("resume.text_length", len(text)))

	parsed, err := s.structurer.Structure(ctx, text)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notify.Notification{
		Email:       in.Identity,
		Skills:      parsed.Skills,
		Experience:  parsed.Experience,
		RapidAPIKey: s.rapidAPIKey,
	})

	return &AnalyzeResult{
		Filename:   in.File.Name,
		Skills:     parsed.Skills,
		Experience: parsed.Experience,
		Status:     StatusAnalyzed,
	}, nil
}
