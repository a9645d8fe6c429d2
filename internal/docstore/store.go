package docstore

import "context"

type Store interface {
	List(ctx context.Context, resource string, q Query) ([]Document, error)
	Get(ctx context.Context, resource string, id int64) (Document, error)
	Create(ctx context.Context, resource string, doc Document) (Document, error)
	Patch(ctx context.Context, resource string, id int64, doc Document) (Document, error)
	Replace(ctx context.Context, resource string, id int64, doc Document) (Document, error)
	Delete(ctx context.Context, resource string, id int64) error

	// Seed loads initial documents, keeping their ids, into empty resources.
	Seed(ctx context.Context, data map[string][]Document) error
}
