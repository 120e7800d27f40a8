package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobrec/internal/service"
)

// UploadResume stores the raw resume and triggers the workflow.
//
// @Summary  Upload a resume for the workflow
// @Tags     relay
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "Resume"
// @Success  200 {object} service.UploadResult
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /upload_resume [post]
func UploadResume(svc service.RelayService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, ferr := readFormFile(c, maxBytes)
		if ferr != nil {
			return writeError(c, ferr.status, ferr.code, ferr.message)
		}

		res, err := svc.Upload(c.UserContext(), *file)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(res)
	}
}
