package database

import "linkedin-poster/internal/database/models"

// PostLogger defines the interface for mirroring publish attempts to durable
// storage. The in-memory history stays the source of truth for quota checks;
// this log only survives restarts for later inspection.
type PostLogger interface {
	// LogPublishedPost records one publish attempt.
	LogPublishedPost(log models.PostLog) error
}
