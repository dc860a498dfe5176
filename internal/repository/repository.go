package repository

import (
	"context"
	"database/sql"
	"time"

	"sprinkler/internal/models"
)

// EventQuery selects journal events. Zero values leave a field unfiltered.
type EventQuery struct {
	From time.Time // inclusive
	To   time.Time // inclusive
	Type string
	Zone string
}

type EventRepo interface {
	Append(ctx context.Context, e models.RunEvent) error
	List(ctx context.Context, q EventQuery) ([]models.RunEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
