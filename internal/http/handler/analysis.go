package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"jobrec/internal/model"
	"jobrec/internal/service"
)

// AnalyzeOptions configures the analyze_resume handler.
type AnalyzeOptions struct {
	// DefaultIdentity is used when the form carries no email field.
	DefaultIdentity string
	// MaxBytes caps the size of the uploaded file. Zero disables the check.
	MaxBytes int64
}

// AnalyzeResume extracts, structures and forwards an uploaded resume.
//
// @Summary  Analyze a resume
// @Tags     analysis
// @Accept   multipart/form-data
// @Produce  json
// @Param    file  formData file   true  "PDF or DOCX resume"
// @Param    email formData string false "Address the workflow reports matches to"
// @Success  200 {object} service.AnalyzeResult
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /analyze_resume [post]
func AnalyzeResume(svc service.AnalysisService, opts AnalyzeOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, ferr := readFormFile(c, opts.MaxBytes)
		if ferr != nil {
			return writeError(c, ferr.status, ferr.code, ferr.message)
		}

		identity := c.FormValue("email")
		if identity == "" {
			identity = opts.DefaultIdentity
		}

		res, err := svc.Analyze(c.UserContext(), service.AnalyzeInput{File: *file, Identity: identity})
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(res)
	}
}

// formError is a rejected multipart upload.
type formError struct {
	status  int
	code    string
	message string
}

// readFormFile loads the multipart "file" field.
func readFormFile(c *fiber.Ctx, maxBytes int64) (*model.UploadedFile, *formError) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &formError{fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"}
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, &formError{fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the upload limit"}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, &formError{fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file"}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &formError{fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file"}
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	return &model.UploadedFile{Name: fh.Filename, ContentType: ct, Content: content}, nil
}
