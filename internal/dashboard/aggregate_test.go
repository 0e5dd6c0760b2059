package dashboard

import (
	"testing"

	"github.com/awoyaledolapo/clytix-1/internal/models"
)

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	want := StatusCounts{}
	if got != want {
		t.Errorf("Aggregate(nil) = %+v, want all zero", got)
	}
}

func TestAggregateCounts(t *testing.T) {
	tickets := []models.Ticket{
		{ID: "1", Status: models.StatusOpen},
		{ID: "2", Status: models.StatusOpen},
		{ID: "3", Status: models.StatusInProgress},
		{ID: "4", Status: models.StatusClosed},
		{ID: "5", Status: models.StatusClosed},
		{ID: "6", Status: models.StatusClosed},
	}
	got := Aggregate(tickets)
	want := StatusCounts{Total: 6, Open: 2, InProgress: 1, Closed: 3}
	if got != want {
		t.Errorf("Aggregate = %+v, want %+v", got, want)
	}
}

func TestAggregatePartition(t *testing.T) {
	// Every ticket has exactly one of the three statuses, so the
	// buckets must partition the total.
	statuses := []models.Status{models.StatusOpen, models.StatusInProgress, models.StatusClosed}
	var tickets []models.Ticket
	for i := 0; i < 25; i++ {
		tickets = append(tickets, models.Ticket{Status: statuses[i%3]})
	}
	c := Aggregate(tickets)
	if c.Open+c.InProgress+c.Closed != c.Total {
		t.Errorf("open+in_progress+closed = %d, want total %d",
			c.Open+c.InProgress+c.Closed, c.Total)
	}
	if c.Total != len(tickets) {
		t.Errorf("Total = %d, want %d", c.Total, len(tickets))
	}
}
