package repository

import (
	"time"

	"pos_manager/internal/models"

	"gorm.io/gorm"
)

type LoginHistoryRepository interface {
	Create(record *models.LoginHistory) error
	GetByUserID(userID uint) ([]models.LoginHistory, error)
	GetActiveByUserID(userID uint) (*models.LoginHistory, error)
	CloseSession(id uint, logoutAt time.Time) error
	ExpireOlderThan(cutoff time.Time) error
}

type loginHistoryRepository struct {
	db *gorm.DB
}

func NewLoginHistoryRepository(db *gorm.DB) LoginHistoryRepository {
	return &loginHistoryRepository{db: db}
}

func (r *loginHistoryRepository) Create(record *models.LoginHistory) error {
	return r.db.Create(record).Error
}

func (r *loginHistoryRepository) GetByUserID(userID uint) ([]models.LoginHistory, error) {
	var records []models.LoginHistory
	err := r.db.Where("user_id = ?", userID).Order("login_at desc").Find(&records).Error
	return records, err
}

func (r *loginHistoryRepository) GetActiveByUserID(userID uint) (*models.LoginHistory, error) {
	var record models.LoginHistory
	err := r.db.Where("user_id = ? AND status = ?", userID, string(models.SessionActive)).
		Order("login_at desc").First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *loginHistoryRepository) CloseSession(id uint, logoutAt time.Time) error {
	return r.db.Model(&models.LoginHistory{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"logout_at": logoutAt,
			"status":    string(models.SessionLoggedOut),
		}).Error
}

func (r *loginHistoryRepository) ExpireOlderThan(cutoff time.Time) error {
	return r.db.Model(&models.LoginHistory{}).
		Where("status = ? AND login_at < ?", string(models.SessionActive), cutoff).
		Update("status", string(models.SessionExpired)).Error
}
