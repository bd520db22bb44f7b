package inboxgorm

import (
	"context"
	"errors"

	"github.com/oggyb/smsdev/internal/db"
	"github.com/oggyb/smsdev/internal/domain/inbox"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is a GORM-backed implementation of inbox.Repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inbox repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// SaveIfAbsent inserts the message, relying on the unique gateway_id index
// so concurrent pollers cannot store the same reply twice.
func (r *Repository) SaveIfAbsent(ctx context.Context, m *inbox.ReceivedMessage) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "gateway_id"}},
			DoNothing: true,
		}).
		Create(fromDomain(m))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns a page of received messages, newest first, and the total count.
func (r *Repository) List(ctx context.Context, page, limit int) ([]*inbox.ReceivedMessage, int64, error) {
	var models []ReceivedMessageModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ReceivedMessageModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	err := query.
		Order("received_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// GetByGatewayID looks a message up by the id the gateway assigned to it.
func (r *Repository) GetByGatewayID(ctx context.Context, gatewayID int64) (*inbox.ReceivedMessage, error) {
	var m ReceivedMessageModel

	err := r.db.WithContext(ctx).
		Where("gateway_id = ?", gatewayID).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, inbox.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return toDomain(&m), nil
}

// compile-time interface check
var _ inbox.Repository = (*Repository)(nil)
