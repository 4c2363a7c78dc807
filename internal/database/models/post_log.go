package models

import "time"

// PostLog stores information about one publish attempt mirrored to MongoDB.
type PostLog struct {
	PersonURN   string    `bson:"person_urn"`
	Topic       string    `bson:"topic,omitempty"`
	Excerpt     string    `bson:"excerpt"`
	Status      string    `bson:"status"`
	PostID      string    `bson:"post_id,omitempty"`
	PublishedAt time.Time `bson:"published_at"`
}
