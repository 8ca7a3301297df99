package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/bowling-league/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if leagues == nil {
		leagues = []usecase.LeagueSummary{}
	}

	writeSuccess(ctx, w, http.StatusOK, leagues)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague", pathAttributes(r)...)
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	view, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam", pathAttributes(r)...)
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	item, err := h.leagueService.GetTeam(ctx, leagueID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer", pathAttributes(r)...)
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	item, err := h.leagueService.GetPlayer(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetHonorRoll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHonorRoll", pathAttributes(r)...)
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	entries, err := h.leagueService.GetHonorRoll(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get honor roll failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if entries == nil {
		entries = []usecase.HonorRollEntry{}
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) ImportLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportLeague", pathAttributes(r)...)
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	summary, err := h.leagueService.Import(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "import league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

// DecorateLeague scores a posted league document and returns it without
// storing it. Scoring issues are reported inside the view unless the caller
// asks for ?strict=true, which turns them into the response error.
func (h *Handler) DecorateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DecorateLeague")
	defer span.End()

	doc, err := h.decodeLeagueDocument(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.leagueService.DecorateDocument(ctx, doc)
	if err != nil {
		h.logger.WarnContext(ctx, "decorate league failed", "league_id", doc.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(view.Issues) > 0 {
		h.logger.InfoContext(ctx, "league decorated with issues", "league_id", doc.ID, "issues", len(view.Issues))
		if strict, _ := strconv.ParseBool(r.URL.Query().Get("strict")); strict {
			writeError(ctx, w, view.Err())
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}
