package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicationService struct {
	db *gorm.DB
}

func NewMedicationService(db *gorm.DB) *MedicationService {
	return &MedicationService{db: db}
}

func (s *MedicationService) List(patientID uuid.UUID, activeOnly bool) ([]models.Medication, error) {
	q := s.db.Scopes(scope.ForPatient(patientID))
	if activeOnly {
		q = q.Where("active = true")
	}

	var medications []models.Medication
	if err := q.Order("created_at desc").Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

func (s *MedicationService) Get(patientID, id uuid.UUID) (*models.Medication, error) {
	var medication models.Medication
	err := s.db.Scopes(scope.ForPatient(patientID)).First(&medication, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load medication: %w", err)
	}
	return &medication, nil
}

func (s *MedicationService) Create(patientID uuid.UUID, req *dto.CreateMedicationRequest) (*models.Medication, error) {
	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	medication := models.Medication{
		ID:           uuid.New(),
		PatientID:    patientID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Times:        req.Times,
		Active:       true,
		StartDate:    startDate,
		EndDate:      req.EndDate,
		Instructions: req.Instructions,
	}

	if err := s.db.Create(&medication).Error; err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return &medication, nil
}

func (s *MedicationService) Update(patientID, id uuid.UUID, req *dto.UpdateMedicationRequest) (*models.Medication, error) {
	medication, err := s.Get(patientID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Dosage != nil {
		updates["dosage"] = *req.Dosage
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.Times != nil {
		medication.Times = *req.Times
		updates["times"] = medication.Times
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}

	if len(updates) > 0 {
		if err := s.db.Model(medication).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update medication: %w", err)
		}
	}
	return medication, nil
}

func (s *MedicationService) Delete(patientID, id uuid.UUID) error {
	result := s.db.Scopes(scope.ForPatient(patientID)).Delete(&models.Medication{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete medication: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkTaken appends one entry to the medication's taken log.
func (s *MedicationService) MarkTaken(patientID, id uuid.UUID, takenAt string) (*models.Medication, error) {
	medication, err := s.Get(patientID, id)
	if err != nil {
		return nil, err
	}

	medication.TakenLog = append(medication.TakenLog, models.TakenEntry{
		Date:  time.Now(),
		Time:  takenAt,
		Taken: true,
	})

	if err := s.db.Model(medication).Update("taken_log", medication.TakenLog).Error; err != nil {
		return nil, fmt.Errorf("failed to record taken entry: %w", err)
	}
	return medication, nil
}
