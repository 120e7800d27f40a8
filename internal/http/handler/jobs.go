package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"jobrec/internal/model"
	"jobrec/internal/service"
)

// MsgNoLatestJobs is returned by get_latest_jobs before any batch arrived.
const MsgNoLatestJobs = "No recent job data available"

// StoreJobs persists a single posting pushed by the workflow.
//
// @Summary  Store one job posting
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Param    job body model.JobPosting true "Job posting"
// @Success  200 {object} map[string]string
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /store_jobs [post]
func StoreJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var job model.JobPosting
		if err := json.Unmarshal(c.Body(), &job); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON job object")
		}

		if err := svc.Store(c.UserContext(), job); err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "message": service.MsgJobStored})
	}
}

// SaveJobs replaces the latest batch and persists its postings.
//
// @Summary  Save a batch of job postings
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Param    batch body model.JobBatch true "Job batch"
// @Success  200 {object} service.SaveResult
// @Failure  400 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /save_jobs [post]
func SaveJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.SaveBatch(c.UserContext(), c.Body())
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(res)
	}
}

// GetLatestJobs returns the most recent batch exactly as it was received.
//
// @Summary  Latest job batch
// @Tags     jobs
// @Produce  json
// @Success  200 {object} model.JobBatch
// @Router   /get_latest_jobs [get]
func GetLatestJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := svc.Latest()
		if snap == nil {
			return c.JSON(fiber.Map{"message": MsgNoLatestJobs})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(snap.Payload)
	}
}
