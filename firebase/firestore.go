package firebase

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/utilities"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Firestore accepts at most 500 writes per batch.
const deleteBatchSize = 500

// DeleteProject removes the activity subcollection and then the project
// document. Firestore never deletes subcollections with their parent.
func (l *ActivityLog) DeleteProject(ctx context.Context, projectID int64) error {
	projectRef := l.client.Collection(projectsCollection).Doc(strconv.FormatInt(projectID, 10))

	total, err := deleteCollection(ctx, l.client, projectRef.Collection(activityCollection))
	if err != nil {
		return fmt.Errorf("delete activity of project %d: %w", projectID, err)
	}

	if _, err := projectRef.Delete(ctx); err != nil {
		return fmt.Errorf("delete project document %d: %w", projectID, err)
	}
	utilities.LogDebug("deleted %d activity entries of project %d", total, projectID)
	return nil
}

func deleteCollection(ctx context.Context, client *firestore.Client, ref *firestore.CollectionRef) (int, error) {
	total := 0
	for {
		iter := ref.Limit(deleteBatchSize).Documents(ctx)
		batch := client.Batch()
		numDeleted := 0
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return total, err
			}
			batch.Delete(doc.Ref)
			numDeleted++
		}
		iter.Stop()

		if numDeleted == 0 {
			return total, nil
		}
		if _, err := batch.Commit(ctx); err != nil {
			return total, err
		}
		total += numDeleted
	}
}
