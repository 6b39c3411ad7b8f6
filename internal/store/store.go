package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cargo-portal/internal/model"
)

// Store defines the interface for all portal-local database operations.
type Store interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string, now time.Time) (*model.Session, error)
	SetFlash(ctx context.Context, id string, flash Flash) error
	TakeFlash(ctx context.Context, id string) (Flash, error)
	DeleteSession(ctx context.Context, id string) error
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	SaveSubscription(ctx context.Context, sub model.PushSubscription, trackingNumbers []string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsFor(ctx context.Context, trackingNumber string) ([]model.PushSubscription, error)

	WatchedTrackingNumbers(ctx context.Context) ([]string, error)
	UpdateTracking(ctx context.Context, observations []Observation) ([]StatusChange, error)
	PruneUnwatched(ctx context.Context) (int64, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Sessions ---

func (s *gormStore) CreateSession(ctx context.Context, session *model.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *gormStore) GetSession(ctx context.Context, id string, now time.Time) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

func (s *gormStore) SetFlash(ctx context.Context, id string, flash Flash) error {
	res := s.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{"flash": flash.Message, "flash_kind": flash.Kind})
	if res.Error != nil {
		return fmt.Errorf("failed to set flash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// TakeFlash returns and clears the pending flash message.
func (s *gormStore) TakeFlash(ctx context.Context, id string) (Flash, error) {
	var flash Flash
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session model.Session
		if err := tx.Select("id", "flash", "flash_kind").First(&session, "id = ?", id).Error; err != nil {
			return err
		}
		if session.Flash == "" {
			return nil
		}
		flash = Flash{Kind: session.FlashKind, Message: session.Flash}
		return tx.Model(&model.Session{}).
			Where("id = ?", id).
			Updates(map[string]any{"flash": "", "flash_kind": ""}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Flash{}, ErrSessionNotFound
	}
	if err != nil {
		return Flash{}, fmt.Errorf("failed to take flash: %w", err)
	}
	return flash, nil
}

func (s *gormStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Session{ID: id}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *gormStore) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
