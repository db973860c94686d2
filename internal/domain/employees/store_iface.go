package employees

import "context"

type StoreAPI interface {
	CountByRole(ctx context.Context, role string) (int, error)
	List(ctx context.Context, role string, limit, offset int) ([]Employee, error)
}
