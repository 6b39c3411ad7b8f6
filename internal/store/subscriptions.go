package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cargo-portal/internal/model"
)

// SaveSubscription creates or replaces a push subscription and the set of
// tracking numbers it watches.
func (s *gormStore) SaveSubscription(ctx context.Context, sub model.PushSubscription, trackingNumbers []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		tracked := make([]*model.TrackedShipment, 0, len(trackingNumbers))
		for _, tn := range trackingNumbers {
			tracked = append(tracked, &model.TrackedShipment{TrackingNumber: tn})
		}
		if len(tracked) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tracked).Error; err != nil {
				return fmt.Errorf("failed to register tracked shipments: %w", err)
			}
		}

		if err := tx.Model(&sub).Association("Shipments").Replace(tracked); err != nil {
			return fmt.Errorf("failed to replace watched shipments: %w", err)
		}
		return nil
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Preload("Shipments").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM subscription_shipment_mapping WHERE push_subscription_endpoint = ?", endpoint).Error; err != nil {
			return fmt.Errorf("failed to delete subscription mappings: %w", err)
		}
		if err := tx.Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return nil
	})
}

func (s *gormStore) SubscriptionsFor(ctx context.Context, trackingNumber string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_shipment_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.tracked_shipment_tracking_number = ?", trackingNumber).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for %s: %w", trackingNumber, err)
	}
	return subs, nil
}
