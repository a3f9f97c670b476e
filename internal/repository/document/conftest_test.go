package document

import "context"

// fakeStore implements the store interface with overridable behavior per test.
type fakeStore struct {
	bulkFunc    func(ctx context.Context, payload []byte) ([]byte, error)
	refreshFunc func(ctx context.Context, index string) error
}

func (f *fakeStore) Bulk(ctx context.Context, payload []byte) ([]byte, error) {
	return f.bulkFunc(ctx, payload)
}

func (f *fakeStore) Refresh(ctx context.Context, index string) error {
	return f.refreshFunc(ctx, index)
}
