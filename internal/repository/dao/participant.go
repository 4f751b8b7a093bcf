package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrParticipantEmailExists = errors.New("participant already exists")
)

type Participant struct {
	ID uint `gorm:"primaryKey"`

	Name      string `gorm:"not null"`
	Email     string `gorm:"unique;not null"`
	Company   string
	AuthToken string `gorm:"uniqueIndex;not null"`
	AvatarURL string
	IsBlocked bool   `gorm:"not null;default:false"`
	IsVIP     bool   `gorm:"not null;default:false"`
	Role      string `gorm:"not null;default:participant"` // "admin" or "participant"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantSession struct {
	ID uint `gorm:"primaryKey"`

	ParticipantID     uint   `gorm:"not null;uniqueIndex:uq_participant_sessions_device"`
	DeviceFingerprint string `gorm:"not null;uniqueIndex:uq_participant_sessions_device"`
	IPAddress         string
	UserAgent         string
	LastActivity      time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Participant{}, ErrParticipantEmailExists
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByToken(ctx context.Context, token string) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, "auth_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindAll(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Order("name asc").Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id = ?", id).
		Update("is_blocked", blocked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

// UpsertSession inserts or refreshes the device session row keyed by
// (participant_id, device_fingerprint).
func (d *ParticipantDAO) UpsertSession(ctx context.Context, session ParticipantSession) (ParticipantSession, error) {
	session.LastActivity = time.Now()

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "participant_id"}, {Name: "device_fingerprint"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"ip_address":    session.IPAddress,
				"user_agent":    session.UserAgent,
				"last_activity": session.LastActivity,
			}),
		}).Create(&session)
		if result.Error != nil {
			return result.Error
		}

		return tx.First(&session,
			"participant_id = ? AND device_fingerprint = ?",
			session.ParticipantID, session.DeviceFingerprint,
		).Error
	})
	if err != nil {
		return ParticipantSession{}, err
	}

	return session, nil
}

func (d *ParticipantDAO) TouchSession(ctx context.Context, sessionID uint) error {
	result := d.db.WithContext(ctx).
		Model(&ParticipantSession{}).
		Where("id = ?", sessionID).
		Update("last_activity", time.Now())

	return result.Error
}

func (d *ParticipantDAO) DeleteSession(ctx context.Context, sessionID uint) error {
	result := d.db.WithContext(ctx).Delete(&ParticipantSession{}, sessionID)

	return result.Error
}
