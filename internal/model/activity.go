package model

import "time"

const (
	ActivityPostCreated = "created"
	ActivityPostEdited  = "edited"
	ActivityPostDeleted = "deleted"
)

// Activity is an append-only record of a post lifecycle action, persisted
// asynchronously by the activity worker.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Action    string    `gorm:"size:16;not null" json:"action"`
	PostTitle string    `gorm:"size:100;not null" json:"post_title"`
	CreatedAt time.Time `json:"created_at"`
}
