package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTopicNotFound = errors.New("topic not found")

type Topic struct {
	ID uint `gorm:"primaryKey"`

	BOFSessionID  uint   `gorm:"not null;index"`
	ParticipantID uint   `gorm:"not null;index"`
	Title         string `gorm:"not null"`
	Description   string
	IsHidden      bool `gorm:"not null;default:false"`

	Author Participant `gorm:"foreignKey:ParticipantID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TopicDAO struct {
	db *gorm.DB
}

func NewTopicDAO(db *gorm.DB) *TopicDAO {
	return &TopicDAO{
		db: db,
	}
}

// Insert creates the topic row. When clearAuthorVotes is set, any vote
// the author holds in the same session is removed in the same
// transaction: leading a topic and joining another are mutually
// exclusive.
func (d *TopicDAO) Insert(ctx context.Context, topic Topic, clearAuthorVotes bool) (Topic, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clearAuthorVotes {
			result := tx.
				Where("participant_id = ? AND bof_session_id = ?", topic.ParticipantID, topic.BOFSessionID).
				Delete(&Vote{})
			if result.Error != nil {
				return result.Error
			}
		}

		return tx.Create(&topic).Error
	})
	if err != nil {
		return Topic{}, err
	}

	return topic, nil
}

func (d *TopicDAO) FindByID(ctx context.Context, id uint) (Topic, error) {
	var topic Topic

	result := d.db.WithContext(ctx).Preload("Author").First(&topic, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Topic{}, ErrTopicNotFound
		}

		return Topic{}, result.Error
	}

	return topic, nil
}

// FindByAuthorAndSession returns the author's topic in the given
// session, used to enforce the one-topic-per-session constraint.
func (d *TopicDAO) FindByAuthorAndSession(ctx context.Context, participantID, sessionID uint) (Topic, error) {
	var topic Topic

	result := d.db.WithContext(ctx).
		First(&topic, "participant_id = ? AND bof_session_id = ?", participantID, sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Topic{}, ErrTopicNotFound
		}

		return Topic{}, result.Error
	}

	return topic, nil
}

func (d *TopicDAO) FindBySession(ctx context.Context, sessionID uint) ([]Topic, error) {
	var topics []Topic

	result := d.db.WithContext(ctx).
		Preload("Author").
		Where("bof_session_id = ?", sessionID).
		Order("created_at asc").
		Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}

	return topics, nil
}

func (d *TopicDAO) FindByAuthor(ctx context.Context, participantID uint) ([]Topic, error) {
	var topics []Topic

	result := d.db.WithContext(ctx).
		Preload("Author").
		Where("participant_id = ?", participantID).
		Order("created_at desc").
		Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}

	return topics, nil
}

func (d *TopicDAO) Update(ctx context.Context, id uint, title, description string) (Topic, error) {
	var topic Topic

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Topic{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"title":       title,
				"description": description,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTopicNotFound
		}

		return tx.Preload("Author").First(&topic, id).Error
	})
	if err != nil {
		return Topic{}, err
	}

	return topic, nil
}

func (d *TopicDAO) SetHidden(ctx context.Context, id uint, hidden bool) error {
	result := d.db.WithContext(ctx).
		Model(&Topic{}).
		Where("id = ?", id).
		Update("is_hidden", hidden)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTopicNotFound
	}

	return nil
}

// Delete removes the topic and every vote referencing it in one
// transaction. A partial cascade would orphan votes.
func (d *TopicDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Topic{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTopicNotFound
		}

		return nil
	})
}

// Move repoints the topic and all its votes to another session in one
// transaction. A voter who already holds a vote in the target session
// keeps that vote; their vote on the moved topic is dropped so the
// unique (participant_id, bof_session_id) index is never violated.
func (d *TopicDAO) Move(ctx context.Context, id, targetSessionID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Topic{}).
			Where("id = ?", id).
			Update("bof_session_id", targetSessionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTopicNotFound
		}

		holders := tx.Model(&Vote{}).
			Select("participant_id").
			Where("bof_session_id = ? AND topic_id <> ?", targetSessionID, id)
		if err := tx.
			Where("topic_id = ? AND participant_id IN (?)", id, holders).
			Delete(&Vote{}).Error; err != nil {
			return err
		}

		return tx.Model(&Vote{}).
			Where("topic_id = ?", id).
			Update("bof_session_id", targetSessionID).Error
	})
}

func (d *TopicDAO) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Topic{}).
		Where("bof_session_id = ?", sessionID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TopicDAO) CountVisibleByAuthor(ctx context.Context, participantID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Topic{}).
		Where("participant_id = ? AND is_hidden = ?", participantID, false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
