package usecase

import (
	"errors"

	"github.com/riskibarqy/bowling-league/internal/domain/scoring"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnavailable  = errors.New("dependency unavailable")

	// ErrNotImplemented marks a league configured with an opponent scoring
	// policy the engine does not support.
	ErrNotImplemented = scoring.ErrNotImplemented
)
