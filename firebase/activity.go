package firebase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"taskboard/models"
	"taskboard/utilities"

	"cloud.google.com/go/firestore"
	"github.com/sony/gobreaker"
	"google.golang.org/api/iterator"
)

const (
	projectsCollection = "projects"
	activityCollection = "activity"
	writeTimeout       = 3 * time.Second
)

// ActivityLog stores project history under projects/{id}/activity.
type ActivityLog struct {
	client  *firestore.Client
	breaker *gobreaker.CircuitBreaker
}

func NewActivityLog(client *firestore.Client) *ActivityLog {
	return &ActivityLog{client: client, breaker: newBreaker("firestore-activity")}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utilities.LogWarn("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

func (l *ActivityLog) activity(projectID int64) *firestore.CollectionRef {
	return l.client.Collection(projectsCollection).
		Doc(strconv.FormatInt(projectID, 10)).
		Collection(activityCollection)
}

// Record fails fast while the breaker is open.
func (l *ActivityLog) Record(ctx context.Context, entry models.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := l.breaker.Execute(func() (interface{}, error) {
		_, _, err := l.activity(entry.ProjectID).Add(ctx, entry)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (l *ActivityLog) List(ctx context.Context, projectID int64, limit int) ([]models.ActivityEntry, error) {
	result, err := l.breaker.Execute(func() (interface{}, error) {
		iter := l.activity(projectID).
			OrderBy("created_at", firestore.Desc).
			Limit(limit).
			Documents(ctx)
		defer iter.Stop()

		entries := []models.ActivityEntry{}
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, err
			}
			var entry models.ActivityEntry
			if err := doc.DataTo(&entry); err != nil {
				return nil, fmt.Errorf("decode activity %s: %w", doc.Ref.ID, err)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list activity of project %d: %w", projectID, err)
	}
	return result.([]models.ActivityEntry), nil
}
