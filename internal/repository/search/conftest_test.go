package search

import "context"

// fakeStore implements the store interface with overridable behavior per test.
type fakeStore struct {
	searchFunc func(ctx context.Context, index string, body []byte) ([]byte, error)
}

func (f *fakeStore) Search(ctx context.Context, index string, body []byte) ([]byte, error) {
	return f.searchFunc(ctx, index, body)
}
