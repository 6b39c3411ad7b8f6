package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cargo-portal/internal/model"
)

// WatchedTrackingNumbers lists the tracking numbers with at least one subscriber.
func (s *gormStore) WatchedTrackingNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := s.db.WithContext(ctx).
		Table("subscription_shipment_mapping").
		Distinct("tracked_shipment_tracking_number").
		Order("tracked_shipment_tracking_number").
		Pluck("tracked_shipment_tracking_number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watched tracking numbers: %w", err)
	}
	return numbers, nil
}

// UpdateTracking records the latest observed statuses and returns the
// tracking numbers whose status changed. The first observation of a number
// only sets the baseline.
func (s *gormStore) UpdateTracking(ctx context.Context, observations []Observation) ([]StatusChange, error) {
	if len(observations) == 0 {
		return nil, nil
	}

	numbers := make([]string, 0, len(observations))
	for _, o := range observations {
		numbers = append(numbers, o.TrackingNumber)
	}

	var changes []StatusChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.TrackedShipment
		if err := tx.Where("tracking_number IN ?", numbers).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to fetch tracked shipments: %w", err)
		}
		known := make(map[string]model.TrackedShipment, len(existing))
		for _, t := range existing {
			known[t.TrackingNumber] = t
		}

		for _, o := range observations {
			old, exists := known[o.TrackingNumber]
			if exists && old.Status == o.Status {
				continue
			}

			record := model.TrackedShipment{
				TrackingNumber: o.TrackingNumber,
				Status:         o.Status,
				ObservedAt:     o.ObservedAt,
			}
			if exists {
				record.CreatedAt = old.CreatedAt
			}
			if err := tx.Save(&record).Error; err != nil {
				return fmt.Errorf("failed to save tracked shipment %s: %w", o.TrackingNumber, err)
			}

			if exists && old.Status != "" {
				changes = append(changes, StatusChange{TrackingNumber: o.TrackingNumber, From: old.Status, To: o.Status})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// PruneUnwatched deletes tracked shipments nobody subscribes to anymore.
func (s *gormStore) PruneUnwatched(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Exec(
		"DELETE FROM tracked_shipments WHERE tracking_number NOT IN (SELECT tracked_shipment_tracking_number FROM subscription_shipment_mapping)")
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune tracked shipments: %w", res.Error)
	}
	return res.RowsAffected, nil
}
