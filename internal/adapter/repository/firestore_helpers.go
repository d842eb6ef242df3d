package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"swapskillz/pkg/errors"
)

func isFirestoreNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// getDoc loads one document into T, mapping a missing document to NotFound.
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if isFirestoreNotFound(err) {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to get "+resource, err)
	}

	var out T
	if err := doc.DataTo(&out); err != nil {
		return nil, errors.Internal("Failed to parse "+resource+" data", err)
	}
	return &out, nil
}

func collectDocs[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	var out []*T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, nil
}

// queryPage counts the query's matches, then fetches one page of it.
func queryPage[T any](ctx context.Context, query firestore.Query, limit, offset int) ([]*T, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	items, err := collectDocs[T](query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
