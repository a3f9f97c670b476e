package index

import "context"

// fakeStore implements the store interface with overridable behavior per test.
type fakeStore struct {
	indexExistsFunc func(ctx context.Context, name string) (bool, error)
	createIndexFunc func(ctx context.Context, name string, body []byte) error
}

func (f *fakeStore) IndexExists(ctx context.Context, name string) (bool, error) {
	return f.indexExistsFunc(ctx, name)
}

func (f *fakeStore) CreateIndex(ctx context.Context, name string, body []byte) error {
	return f.createIndexFunc(ctx, name, body)
}
