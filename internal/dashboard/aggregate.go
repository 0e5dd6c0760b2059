// Package dashboard derives status projections from a ticket
// collection. Counts are never stored; they are recomputed from the
// current snapshot on every read.
package dashboard

import "github.com/awoyaledolapo/clytix-1/internal/models"

type StatusCounts struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
}

// Aggregate counts tickets by status. Open + InProgress + Closed always
// equals Total since status is constrained to the three enum values.
func Aggregate(tickets []models.Ticket) StatusCounts {
	c := StatusCounts{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case models.StatusOpen:
			c.Open++
		case models.StatusInProgress:
			c.InProgress++
		case models.StatusClosed:
			c.Closed++
		}
	}
	return c
}
