package services

import (
	"encoding/json"

	"carrent/models"
	"carrent/services/logger"

	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// NotificationService records notifications for users and pushes them over
// the websocket hub. Delivery is fire and forget: failures are logged, never
// propagated to the caller.
type NotificationService struct {
	db  *gorm.DB
	m   *melody.Melody
	log logger.Logger
}

type NotificationServiceOptions struct {
	DB     *gorm.DB
	Melody *melody.Melody
	Logger logger.Logger
}

func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &NotificationService{
		db:  opts.DB,
		m:   opts.Melody,
		log: l,
	}
}

// Notify stores a notification for the user and broadcasts it. Must be
// called after the surrounding transaction has committed.
func (s *NotificationService) Notify(userID uint, message string) {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		s.log.Error("Failed to store notification for user %d: %v", userID, err)
		return
	}

	if s.m == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"userId":  userID,
		"message": message,
	})
	if err != nil {
		s.log.Error("Failed to encode notification payload: %v", err)
		return
	}
	if err := s.m.Broadcast(payload); err != nil {
		s.log.Error("Failed to broadcast notification: %v", err)
	}
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationService) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips a notification to read. Only the owning user may do so.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
