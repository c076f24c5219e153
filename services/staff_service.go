package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

// Authenticate verifies credentials against the bcrypt hash. Both unknown
// usernames and bad passwords surface the same validation error.
func (s *StaffService) Authenticate(username, password string) (*models.Staff, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validationf("username and password are required")
	}

	var staff models.Staff
	if err := s.DB.Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("invalid credentials")
		}
		return nil, persistErr("load staff", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, validationf("invalid credentials")
	}
	return &staff, nil
}
