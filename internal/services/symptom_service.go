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

type SymptomService struct {
	db *gorm.DB
}

func NewSymptomService(db *gorm.DB) *SymptomService {
	return &SymptomService{db: db}
}

func (s *SymptomService) List(patientID uuid.UUID, start, end *time.Time, limit int) ([]models.SymptomLog, error) {
	q := s.db.Scopes(scope.ForPatient(patientID))
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	var logs []models.SymptomLog
	if err := q.Order("date desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list symptom logs: %w", err)
	}
	return logs, nil
}

func (s *SymptomService) Create(patientID uuid.UUID, req *dto.CreateSymptomLogRequest) (*models.SymptomLog, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	log := models.SymptomLog{
		ID:        uuid.New(),
		PatientID: patientID,
		Date:      date,
		Mood:      req.Mood,
		PainLevel: req.PainLevel,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
		Synced:    true,
	}
	if req.ClientKey != "" {
		key := req.ClientKey
		log.ClientKey = &key
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create symptom log: %w", err)
	}
	return &log, nil
}

// BulkCreate flushes a client's offline queue. Each entry carries a
// client-generated key unique per patient; an entry whose key already exists
// is reported as existing rather than inserted again, so a retried flush
// after a half-applied one never duplicates rows. The response carries one
// result per entry and the client drops only the accepted ones.
func (s *SymptomService) BulkCreate(patientID uuid.UUID, req *dto.BulkSymptomLogRequest) (*dto.BulkSymptomLogResponse, error) {
	results := make([]dto.BulkItemResult, 0, len(req.Logs))

	for i := range req.Logs {
		entry := &req.Logs[i]

		if problems := entry.Validate(); len(problems) > 0 {
			results = append(results, dto.BulkItemResult{
				ClientKey: entry.ClientKey,
				Status:    dto.BulkItemRejected,
				Message:   firstProblem(problems),
			})
			continue
		}

		var existing models.SymptomLog
		err := s.db.Scopes(scope.ForPatient(patientID)).
			Where("client_key = ?", entry.ClientKey).First(&existing).Error
		if err == nil {
			results = append(results, dto.BulkItemResult{
				ClientKey: entry.ClientKey,
				Status:    dto.BulkItemExisting,
				ID:        &existing.ID,
			})
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check client key: %w", err)
		}

		created, err := s.Create(patientID, entry)
		if err != nil {
			results = append(results, dto.BulkItemResult{
				ClientKey: entry.ClientKey,
				Status:    dto.BulkItemRejected,
				Message:   "could not store entry",
			})
			continue
		}
		results = append(results, dto.BulkItemResult{
			ClientKey: entry.ClientKey,
			Status:    dto.BulkItemCreated,
			ID:        &created.ID,
		})
	}

	return &dto.BulkSymptomLogResponse{Results: results}, nil
}

func firstProblem(problems map[string]string) string {
	for _, msg := range problems {
		return msg
	}
	return "invalid entry"
}
