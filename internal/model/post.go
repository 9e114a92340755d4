package model

import "time"

// Post represents a single governance post tied to a protocol.
type Post struct {
	Protocol       string    `json:"protocol"`
	PostID         string    `json:"post_id"`
	Timestamp      time.Time `json:"timestamp"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DiscussionLink string    `json:"discussion_link,omitempty"`
}
