package ports

import "context"

// UnitOfWork runs fn inside a single storage transaction. Repositories
// called with the ctx passed to fn join that transaction, so an overlap
// check and the write it guards commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
