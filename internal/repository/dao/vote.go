package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVoteNotFound = errors.New("vote not found")

type Vote struct {
	ID uint `gorm:"primaryKey"`

	TopicID       uint `gorm:"not null;index"`
	ParticipantID uint `gorm:"not null;uniqueIndex:uq_votes_participant_session"`
	BOFSessionID  uint `gorm:"not null;uniqueIndex:uq_votes_participant_session"`

	Participant Participant `gorm:"foreignKey:ParticipantID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

// Upsert inserts the vote, or moves the participant's existing vote in
// the session to the new topic. The unique index on
// (participant_id, bof_session_id) plus the on-conflict update makes a
// double-submitted cast land on a single row.
func (d *VoteDAO) Upsert(ctx context.Context, vote Vote) (Vote, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := vote
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "participant_id"}, {Name: "bof_session_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"topic_id":   vote.TopicID,
				"updated_at": time.Now(),
			}),
		}).Create(&insert)
		if result.Error != nil {
			return result.Error
		}

		// Re-read so the caller always sees the surviving row id,
		// whether the cast inserted or moved.
		return tx.First(&vote,
			"participant_id = ? AND bof_session_id = ?",
			vote.ParticipantID, vote.BOFSessionID,
		).Error
	})
	if err != nil {
		return Vote{}, err
	}

	return vote, nil
}

func (d *VoteDAO) FindByParticipantAndSession(ctx context.Context, participantID, sessionID uint) (Vote, error) {
	var vote Vote

	result := d.db.WithContext(ctx).
		First(&vote, "participant_id = ? AND bof_session_id = ?", participantID, sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vote{}, ErrVoteNotFound
		}

		return Vote{}, result.Error
	}

	return vote, nil
}

func (d *VoteDAO) FindByParticipant(ctx context.Context, participantID uint) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at desc").
		Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}

func (d *VoteDAO) FindBySession(ctx context.Context, sessionID uint) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).
		Preload("Participant").
		Where("bof_session_id = ?", sessionID).
		Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}

func (d *VoteDAO) FindByTopic(ctx context.Context, topicID uint) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).
		Preload("Participant").
		Where("topic_id = ?", topicID).
		Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}

func (d *VoteDAO) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("bof_session_id = ?", sessionID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *VoteDAO) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("participant_id = ?", participantID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountSessionsVoted returns how many distinct sessions the participant
// has an active vote in.
func (d *VoteDAO) CountSessionsVoted(ctx context.Context, participantID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Where("participant_id = ?", participantID).
		Distinct("bof_session_id").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountReceivedByAuthor returns how many votes back topics authored by
// the participant.
func (d *VoteDAO) CountReceivedByAuthor(ctx context.Context, participantID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Vote{}).
		Joins("JOIN topics ON topics.id = votes.topic_id").
		Where("topics.participant_id = ?", participantID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
