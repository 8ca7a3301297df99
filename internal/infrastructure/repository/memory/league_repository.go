package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

// LeagueRepository keeps raw league snapshots in insertion order. Every read
// returns a deep copy so callers can decorate it without touching the store.
type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string][]byte
	orders []string
}

func NewLeagueRepository(leagues []league.League) (*LeagueRepository, error) {
	r := &LeagueRepository{
		items:  make(map[string][]byte, len(leagues)),
		orders: make([]string, 0, len(leagues)),
	}
	for _, l := range leagues {
		if err := r.Upsert(context.Background(), l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		l, err := decodeLeague(r.items[id])
		if err != nil {
			return nil, fmt.Errorf("decode league=%s: %w", id, err)
		}
		out = append(out, l)
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	raw, ok := r.items[strings.TrimSpace(leagueID)]
	r.mu.RUnlock()
	if !ok {
		return league.League{}, false, nil
	}

	l, err := decodeLeague(raw)
	if err != nil {
		return league.League{}, false, fmt.Errorf("decode league=%s: %w", leagueID, err)
	}
	return l, true, nil
}

// Upsert replaces a stored snapshot in place or appends a new one.
func (r *LeagueRepository) Upsert(_ context.Context, l league.League) error {
	id := strings.TrimSpace(l.ID)
	if id == "" {
		return fmt.Errorf("%w: league id is required", league.ErrInvalidLeague)
	}
	l.ID = id

	raw, err := sonic.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode league=%s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		r.orders = append(r.orders, id)
	}
	r.items[id] = raw
	return nil
}

func decodeLeague(raw []byte) (league.League, error) {
	var l league.League
	if err := sonic.Unmarshal(raw, &l); err != nil {
		return league.League{}, err
	}
	return l, nil
}
