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

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// List returns the patient's appointments, optionally filtered by status,
// ordered by date.
func (s *AppointmentService) List(patientID uuid.UUID, status string, descending bool) ([]models.Appointment, error) {
	q := s.db.Scopes(scope.ForPatient(patientID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	order := "date asc"
	if descending {
		order = "date desc"
	}

	var appointments []models.Appointment
	if err := q.Order(order).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *AppointmentService) Get(patientID, id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Scopes(scope.ForPatient(patientID)).First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appointment, nil
}

func (s *AppointmentService) Create(patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*models.Appointment, error) {
	appointment := models.Appointment{
		ID:         uuid.New(),
		PatientID:  patientID,
		DoctorName: req.DoctorName,
		Department: req.Department,
		Date:       req.Date,
		Location:   req.Location,
		Status:     models.AppointmentUpcoming,
		Notes:      req.Notes,
	}

	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return &appointment, nil
}

func (s *AppointmentService) Update(patientID, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.Get(patientID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DoctorName != nil {
		updates["doctor_name"] = *req.DoctorName
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(appointment).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(patientID, id uuid.UUID) error {
	result := s.db.Scopes(scope.ForPatient(patientID)).Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
