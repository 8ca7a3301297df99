package league

import "context"

// Repository stores raw league snapshots. GetByID returns a copy the caller
// may decorate freely.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Upsert(ctx context.Context, l League) error
}
