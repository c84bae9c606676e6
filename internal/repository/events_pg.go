package repository

import (
	"encoding/json"
	"fmt"

	"kairopay/internal/domain"

	"gorm.io/gorm"
)

type EventsRepo struct {
}

func InitEventsRepo() *EventsRepo {
	return &EventsRepo{}
}

// Create appends a delivery audit row. Every webhook attempt gets its own
// row, so there is no upsert here.
func (r *EventsRepo) Create(tx *gorm.DB, eventType, relationID, payload, status string) error {
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("invalid payload: %s", payload)
	}

	return tx.Create(&domain.Events{
		Type:       eventType,
		RelationID: relationID,
		Payload:    payload,
		Status:     status,
	}).Error
}

func (r *EventsRepo) FindByRelation(tx *gorm.DB, relationID string) ([]domain.Events, error) {
	var events []domain.Events
	return events, tx.Where(&domain.Events{RelationID: relationID}).Order("created_at ASC").Find(&events).Error
}
