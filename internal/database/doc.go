// Package database provides PostgreSQL connectivity and the feedback repository.
//
// Uses pgx for connection pooling and plain SQL migrations run at startup.
// FeedbackRepo implements domain.FeedbackRepository.
package database
