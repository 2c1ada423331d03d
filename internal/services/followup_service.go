package services

import (
	"errors"
	"fmt"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowUpService struct {
	db *gorm.DB
}

func NewFollowUpService(db *gorm.DB) *FollowUpService {
	return &FollowUpService{db: db}
}

func (s *FollowUpService) List(patientID uuid.UUID, status string) ([]models.FollowUp, error) {
	q := s.db.Scopes(scope.ForPatient(patientID))
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var followUps []models.FollowUp
	if err := q.Order("scheduled_date asc").Find(&followUps).Error; err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	return followUps, nil
}

func (s *FollowUpService) Get(patientID, id uuid.UUID) (*models.FollowUp, error) {
	var followUp models.FollowUp
	err := s.db.Scopes(scope.ForPatient(patientID)).First(&followUp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load follow-up: %w", err)
	}
	return &followUp, nil
}

func (s *FollowUpService) Create(patientID uuid.UUID, req *dto.CreateFollowUpRequest) (*models.FollowUp, error) {
	followUp := models.FollowUp{
		ID:            uuid.New(),
		PatientID:     patientID,
		Title:         req.Title,
		ScheduledDate: req.ScheduledDate,
		Type:          req.Type,
		Status:        models.FollowUpPending,
		Notes:         req.Notes,
		Location:      req.Location,
	}

	if err := s.db.Create(&followUp).Error; err != nil {
		return nil, fmt.Errorf("failed to create follow-up: %w", err)
	}
	return &followUp, nil
}

func (s *FollowUpService) Update(patientID, id uuid.UUID, req *dto.UpdateFollowUpRequest) (*models.FollowUp, error) {
	followUp, err := s.Get(patientID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ScheduledDate != nil {
		updates["scheduled_date"] = *req.ScheduledDate
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	if len(updates) > 0 {
		if err := s.db.Model(followUp).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update follow-up: %w", err)
		}
	}
	return followUp, nil
}

func (s *FollowUpService) Delete(patientID, id uuid.UUID) error {
	result := s.db.Scopes(scope.ForPatient(patientID)).Delete(&models.FollowUp{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow-up: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
