package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/awoyaledolapo/clytix-1/internal/dashboard"
	"github.com/awoyaledolapo/clytix-1/internal/models"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

// List returns the owner's tickets, newest first. The whole collection
// is returned: the client replaces its snapshot wholesale.
func (r *TicketRepo) List(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, COALESCE(description, ''), status, COALESCE(priority, ''),
		       created_at, updated_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list tickets")
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan ticket")
		}
		out = append(out, t)
	}
	return out, errors.Wrap(rows.Err(), "list tickets")
}

func (r *TicketRepo) Create(ctx context.Context, ownerID string, d models.Draft) (*models.Ticket, error) {
	now := time.Now()
	t := models.Ticket{
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO tickets (user_id, title, description, status, priority, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`,
		ownerID, d.Title, nullIfEmpty(d.Description), d.Status, nullIfEmpty(string(d.Priority)), now, now,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "create ticket")
	}
	return &t, nil
}

// Update rewrites the mutable fields. The owner filter rides along even
// though the caller is already identity-gated; zero rows affected means
// the ticket is gone or belongs to someone else.
func (r *TicketRepo) Update(ctx context.Context, id, ownerID string, d models.Draft) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET
			title=$1, description=$2, status=$3, priority=$4, updated_at=$5
		WHERE id=$6 AND user_id=$7
	`,
		d.Title, nullIfEmpty(d.Description), d.Status, nullIfEmpty(string(d.Priority)), time.Now(), id, ownerID,
	)
	if err != nil {
		return errors.Wrap(err, "update ticket")
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketRepo) Delete(ctx context.Context, id, ownerID string) error {
	ct, err := r.db.Exec(ctx, `
		DELETE FROM tickets WHERE id=$1 AND user_id=$2
	`, id, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete ticket")
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// StatusCounts lets the dashboard skip the list round-trip and count in
// SQL. The pure aggregate over a fetched snapshot remains the fallback.
func (r *TicketRepo) StatusCounts(ctx context.Context, ownerID string) (dashboard.StatusCounts, error) {
	var c dashboard.StatusCounts
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'open'),
		       COUNT(*) FILTER (WHERE status = 'in_progress'),
		       COUNT(*) FILTER (WHERE status = 'closed')
		FROM tickets
		WHERE user_id = $1
	`, ownerID).Scan(&c.Total, &c.Open, &c.InProgress, &c.Closed)
	if err != nil {
		return dashboard.StatusCounts{}, errors.Wrap(err, "count tickets")
	}
	return c, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
