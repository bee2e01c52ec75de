package models

import "time"

// Follow is a directed edge: the follower receives the followed user's
// publications in their feed. The compound unique index is the authoritative
// duplicate guard; handler-level existence checks are advisory only.
// If a user account is ever hard-deleted, edges in both directions must be
// cleaned with it.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
