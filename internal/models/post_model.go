package models

import "time"

type Post struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title" validate:"required,max=200"`
	Content         string     `db:"content" json:"content" validate:"required"`
	Platform        string     `db:"platform" json:"platform" validate:"required,oneof=instagram facebook twitter linkedin"`
	Status          string     `db:"status" json:"status" validate:"required,oneof=draft scheduled published"`
	ScheduledTime   *time.Time `db:"scheduled_time" json:"scheduled_time"`
	EngagementScore int64      `db:"engagement_score" json:"engagement_score" validate:"min=-2147483648,max=2147483647"`
	ImageURL        *string    `db:"image_url" json:"image_url" validate:"omitempty,max=500,url"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
)

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)
