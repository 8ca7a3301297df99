package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if swaggerEnabled {
		registerDocsRoutes(mux, handler)
	}
}

func registerDocsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// registerLeagueRoutes mounts the read side first, then the two POST
// endpoints that decorate or import documents.
func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	reads := map[string]http.HandlerFunc{
		"/v1/leagues":                               handler.ListLeagues,
		"/v1/leagues/{leagueID}":                    handler.GetLeague,
		"/v1/leagues/{leagueID}/teams/{teamID}":     handler.GetTeam,
		"/v1/leagues/{leagueID}/players/{playerID}": handler.GetPlayer,
		"/v1/leagues/{leagueID}/honor-roll":         handler.GetHonorRoll,
	}
	for path, h := range reads {
		mux.HandleFunc(http.MethodGet+" "+path, h)
	}

	mux.HandleFunc("POST /v1/leagues/decorate", handler.DecorateLeague)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/import", handler.ImportLeague)
}
