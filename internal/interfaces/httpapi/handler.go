package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	idgen "github.com/riskibarqy/bowling-league/internal/platform/id"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/usecase"
)

const maxDecodeBodyBytes = 6 << 20

var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

type Handler struct {
	leagueService *usecase.LeagueService
	adhocIDs      idgen.Generator
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(leagueService *usecase.LeagueService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService: leagueService,
		adhocIDs:      idgen.NewRandomGenerator("adhoc"),
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type readiness struct {
	Status  string `json:"status"`
	Leagues int    `json:"leagues"`
}

// Readyz reports ready once the snapshot store answers.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrUnavailable, err))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, readiness{Status: "ready", Leagues: len(leagues)})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeLeagueDocument reads a league document from the request body and
// rejects fields the document model does not know about.
func (h *Handler) decodeLeagueDocument(ctx context.Context, w http.ResponseWriter, r *http.Request) (league.League, error) {
	var doc league.League
	decoder := strictJSON.NewDecoder(http.MaxBytesReader(w, r.Body, maxDecodeBodyBytes))
	if err := decoder.Decode(&doc); err != nil {
		return league.League{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if decoder.More() {
		return league.League{}, fmt.Errorf("%w: request body must hold a single league document", usecase.ErrInvalidInput)
	}

	doc.ID = strings.TrimSpace(doc.ID)
	if doc.ID == "" {
		id, err := h.adhocIDs.NewID()
		if err != nil {
			return league.League{}, fmt.Errorf("assign league id: %w", err)
		}
		doc.ID = id
	}
	if err := h.validateRequest(ctx, &doc); err != nil {
		return league.League{}, err
	}
	return doc, nil
}
