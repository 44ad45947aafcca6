package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("user already registered for event")
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Location    string
	OrganizerID uint `gorm:"not null;index"`

	VotingEnabled  bool `gorm:"not null;default:false"`
	VotingStartsAt *time.Time
	VotingEndsAt   *time.Time
	VotingScope    string `gorm:"not null;default:'registered'"` // "public" or "registered"
	VoteMode       string `gorm:"not null;default:'fixed_quota'"`
	VoteQuota      int    `gorm:"not null;default:3"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Registration struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;uniqueIndex:idx_registrations_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_registrations_event_user"`
	Status  string `gorm:"not null;default:'active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) List(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("created_at desc").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) InsertRegistration(ctx context.Context, reg Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&reg)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_registrations_event_user") {
			return Registration{}, ErrAlreadyRegistered
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *EventDAO) HasActiveRegistration(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, "active").
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
