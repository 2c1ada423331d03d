package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/scope"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RolePatient
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    req.Phone,
		Password: string(hash),
		Role:     role,
		Language: language,
		IsActive: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Patients get a linking code up front; caregivers never carry one.
	if user.Role == models.RolePatient {
		if _, err := s.EnsureAccessCode(&user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Same error for unknown email and wrong password, so responses don't
	// reveal which emails are registered.
	var user models.User
	if err := s.db.Where("email = ? AND is_active = true", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user)
}

// Refresh rotates the token pair. The supplied token must hash to exactly the
// stored value; a rotated-out token is rejected for good even before expiry.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenPairResponse, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	userID, err := ParseRefreshToken(s.cfg, refreshToken)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ? AND is_active = true", userID).Error; err != nil {
		return nil, ErrTokenInvalid
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenHash != HashToken(refreshToken) {
		return nil, ErrTokenInvalid
	}

	resp, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}
	return &resp.Tokens, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	resp := userResponse(&user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Language != "" {
		updates["language"] = req.Language
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	resp := userResponse(&user)
	return &resp, nil
}

func (s *AuthService) UpdatePushToken(userID uuid.UUID, token string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("expo_push_token", token).Error
}

// EnsureAccessCode returns the patient's linking code, generating one lazily.
// Generation retries on the unique index until an unused code comes up.
func (s *AuthService) EnsureAccessCode(user *models.User) (string, error) {
	if user.AccessCode != nil && *user.AccessCode != "" {
		return *user.AccessCode, nil
	}

	for attempt := 0; attempt < 10; attempt++ {
		code, err := GenerateAccessCode()
		if err != nil {
			return "", err
		}

		var count int64
		if err := s.db.Model(&models.User{}).Where("access_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check access code: %w", err)
		}
		if count > 0 {
			continue
		}

		// The pre-check and the write can race another registration; a
		// collision surfacing at the write regenerates like any other.
		if err := s.db.Model(user).Update("access_code", code).Error; err != nil {
			if isDuplicateKey(err) {
				continue
			}
			return "", fmt.Errorf("failed to store access code: %w", err)
		}
		user.AccessCode = &code
		return code, nil
	}
	return "", errors.New("could not generate a unique access code")
}

// Link redeems a patient access code for a caregiver. Relinking overwrites
// the previous link unconditionally; the caregiver's whole visible data set
// switches to the new patient.
func (s *AuthService) Link(caregiver *models.User, accessCode string) (*models.User, error) {
	if caregiver.Role != models.RoleCaregiver {
		return nil, scope.ErrForbidden
	}

	code := strings.ToUpper(strings.TrimSpace(accessCode))

	var patient models.User
	if err := s.db.Where("access_code = ? AND role = ?", code, models.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up access code: %w", err)
	}

	if err := s.db.Model(caregiver).Update("linked_patient_id", patient.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to link caregiver: %w", err)
	}
	caregiver.LinkedPatientID = &patient.ID

	return &patient, nil
}

func (s *AuthService) GetLinkedPatient(caregiver *models.User) (*models.User, error) {
	if caregiver.Role != models.RoleCaregiver || caregiver.LinkedPatientID == nil {
		return nil, ErrNotFound
	}

	var patient models.User
	if err := s.db.First(&patient, "id = ?", *caregiver.LinkedPatientID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &patient, nil
}

// issueTokens mints a fresh pair and overwrites the stored refresh hash,
// invalidating whatever refresh token was live before.
func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, accessExp, err := MintAccessToken(s.cfg, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, refreshExp, err := MintRefreshToken(s.cfg, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.db.Model(user).Update("refresh_token_hash", HashToken(refreshToken)).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		User: userResponse(user),
		Tokens: dto.TokenPairResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: refreshExp,
		},
	}, nil
}

// isDuplicateKey matches unique-constraint violations whether or not gorm's
// error translation is active.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value")
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Phone:           user.Phone,
		Role:            user.Role,
		LinkedPatientID: user.LinkedPatientID,
		Language:        user.Language,
		IsActive:        user.IsActive,
	}
}
