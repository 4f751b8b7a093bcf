package domain

import "time"

// Achievement codes awarded by the trigger rules.
const (
	AchievementFirstVoter      = "first_voter"
	AchievementFirstTopic      = "first_topic"
	AchievementActiveVoter     = "active_voter"
	AchievementTopicCreator    = "topic_creator"
	AchievementPopularTopic    = "popular_topic"
	AchievementTopFive         = "top_five"
	AchievementSocialButterfly = "social_butterfly"
	AchievementNightOwl        = "night_owl"
	AchievementEarlyBird       = "early_bird"
)

type Achievement struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

type ParticipantAchievement struct {
	ID            uint        `json:"id"`
	ParticipantID uint        `json:"participant_id"`
	AchievementID uint        `json:"achievement_id"`
	Achievement   Achievement `json:"achievement"`
	EarnedAt      time.Time   `json:"earned_at"`
}
