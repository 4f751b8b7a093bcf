package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Participant{},
		&ParticipantSession{},
		&BOFSession{},
		&Topic{},
		&Vote{},
		&Achievement{},
		&ParticipantAchievement{},
		&AnalyticsEvent{},
	)
	if err != nil {
		return err
	}

	return seedAchievements(db)
}

// seedAchievements installs the static badge catalog. Point values are
// configuration, not state; existing rows are left untouched.
func seedAchievements(db *gorm.DB) error {
	catalog := []Achievement{
		{Code: "first_voter", Title: "First Voter", Description: "Voted first in a BOF session", Icon: "🚀", Points: 50},
		{Code: "first_topic", Title: "First Topic", Description: "Created the first topic in a BOF session", Icon: "💡", Points: 50},
		{Code: "active_voter", Title: "Active Voter", Description: "Voted in every BOF session", Icon: "🗳️", Points: 100},
		{Code: "topic_creator", Title: "Topic Creator", Description: "Created 3+ topics", Icon: "✍️", Points: 75},
		{Code: "popular_topic", Title: "Popular Topic", Description: "Your topic received 10+ votes", Icon: "🔥", Points: 150},
		{Code: "top_five", Title: "Top Five", Description: "Your topic made it to top 5", Icon: "⭐", Points: 200},
		{Code: "social_butterfly", Title: "Social Butterfly", Description: "Voted within first hour of opening", Icon: "🦋", Points: 30},
		{Code: "night_owl", Title: "Night Owl", Description: "Voted after 10 PM", Icon: "🦉", Points: 25},
		{Code: "early_bird", Title: "Early Bird", Description: "Voted before 8 AM", Icon: "🐦", Points: 25},
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&catalog).Error
}
