package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
)

// Loader reads raw league documents from a directory of *.json files.
type Loader struct {
	dir    string
	logger *logging.Logger
}

func NewLoader(dir string, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{dir: strings.TrimSpace(dir), logger: logger}
}

// LoadAll decodes every document in file name order. An empty directory
// setting loads nothing.
func (l *Loader) LoadAll(ctx context.Context) ([]league.League, error) {
	if l.dir == "" {
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(l.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list league documents in %s: %w", l.dir, err)
	}
	sort.Strings(paths)

	out := make([]league.League, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}

	l.logger.InfoContext(ctx, "league documents loaded", "dir", l.dir, "count", len(out))
	return out, nil
}

// LoadFile decodes and validates one league document.
func LoadFile(path string) (league.League, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return league.League{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(raw, path)
}

// Decode parses a league document. name only labels errors.
func Decode(raw []byte, name string) (league.League, error) {
	var doc league.League
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return league.League{}, fmt.Errorf("%w: decode %s: %v", league.ErrInvalidLeague, name, err)
	}
	if err := doc.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}
