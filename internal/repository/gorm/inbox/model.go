package inboxgorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceivedMessageModel is the GORM persistence model for received messages.
// It maps directly to the "received_messages" table in Postgres.
type ReceivedMessageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	GatewayID  int64     `gorm:"not null;uniqueIndex"`
	From       string    `gorm:"column:sender;size:20;not null"`
	Body       string    `gorm:"type:text"`
	ReceivedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName overrides the default table name used by GORM.
func (ReceivedMessageModel) TableName() string {
	return "received_messages"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *ReceivedMessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
