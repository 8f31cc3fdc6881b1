package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartresume/resume-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	FindRecent(limit int) ([]models.Analysis, error)
	FindUnindexed(limit int) ([]models.Analysis, error)
	MarkIndexed(id uuid.UUID) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis not found")
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) FindRecent(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find recent analyses: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) FindUnindexed(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("indexed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed analyses: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark analysis indexed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis not found")
	}

	return nil
}
