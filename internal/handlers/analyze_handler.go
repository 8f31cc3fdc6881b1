package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"smartresume/resume-analyzer/internal/repositories"
	"smartresume/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	repo        repositories.AnalysisRepository
	worker      services.IndexWorker // nil when the vector index is disabled
	maxFileSize int64
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	repo repositories.AnalysisRepository,
	worker services.IndexWorker,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		repo:        repo,
		worker:      worker,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: multipart "file" + "job_description".
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	// A pipeline once started runs to completion even if the client goes
	// away, so it does not inherit the request context.
	analysis, err := h.analyzer.Analyze(context.Background(), data, fileHeader.Filename, jobDescription)
	if err != nil {
		return h.mapAnalyzeError(c, err)
	}

	if err := h.repo.Create(analysis); err != nil {
		log.Printf("❌ Failed to persist analysis %s: %v", analysis.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save analysis",
		})
	}

	if h.worker != nil {
		h.worker.EnqueueJob(analysis.ID)
	}

	return c.JSON(analysis)
}

func (h *AnalyzeHandler) mapAnalyzeError(c *fiber.Ctx, err error) error {
	var extErr *services.ExtractionError

	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file format",
		})
	case errors.As(err, &extErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": extErr.Error(),
		})
	case errors.Is(err, services.ErrEmptyText):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from file",
		})
	default:
		log.Printf("❌ Error analyzing resume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing resume",
		})
	}
}
