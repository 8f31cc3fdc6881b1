package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartresume/resume-analyzer/internal/models"
	"smartresume/resume-analyzer/internal/repositories"
	"smartresume/resume-analyzer/internal/services"
)

type ResultHandler struct {
	repo  repositories.AnalysisRepository
	index services.VectorIndex // nil when the vector index is disabled
}

func NewResultHandler(repo repositories.AnalysisRepository, index services.VectorIndex) *ResultHandler {
	return &ResultHandler{
		repo:  repo,
		index: index,
	}
}

// HandleGetAnalysis handles GET /analyses/:id.
func (h *ResultHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(analysis)
}

// HandleListAnalyses handles GET /analyses.
func (h *ResultHandler) HandleListAnalyses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	analyses, err := h.repo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	return c.JSON(models.ListResponse{
		Count:    len(analyses),
		Analyses: analyses,
	})
}

// HandleGetSimilar handles GET /analyses/:id/similar.
func (h *ResultHandler) HandleGetSimilar(c *fiber.Ctx) error {
	if h.index == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Vector index is not configured",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	matches, err := h.index.FindSimilar(context.Background(), analysis, 5)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Similarity search failed",
		})
	}

	return c.JSON(models.SimilarResponse{
		ID:      analysis.ID.String(),
		Matches: matches,
	})
}
