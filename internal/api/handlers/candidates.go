package handlers

import (
	"net/http"

	"mixtrail-service/internal/api/dto"
	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/ports"
	"mixtrail-service/internal/services"
)

type CandidateHandler struct {
	Source   ports.CandidateSource
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
}

// List returns the caches near the posted route with route geometry attached.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	var req dto.CandidatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, prefs, ok := routeAndPrefs(w, r, req.Polyline, req.Prefs)
	if !ok {
		return
	}

	candidates, err := services.FindCandidates(r.Context(), route.Points, prefs, h.Source)
	if err != nil {
		writeServiceError(w, r, "list_candidates", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CandidatesResponse{Candidates: dto.CandidatesFromDomain(candidates)})
}

// Select scores the posted candidates against the route and picks spaced
// favourites. Supplied geometry fields are recomputed.
func (h *CandidateHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, prefs, ok := routeAndPrefs(w, r, req.Polyline, req.Prefs)
	if !ok {
		return
	}

	raws := make([]domain.RawCandidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		raws = append(raws, c.ToDomain())
	}

	sel := services.SelectFromRaw(route.Points, raws, prefs)
	writeJSON(w, r, http.StatusOK, dto.SelectResponseFrom(sel.Picks, sel.Shortlist))
}

// Suggest plans a route and selects picks along it in one request.
func (h *CandidateHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prefs, err := req.Prefs.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := services.Suggest(r.Context(), req.RoutePlanRequest.ToService(), prefs, h.Geocoder, h.Provider, h.Source)
	if err != nil {
		writeServiceError(w, r, "suggest", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SuggestResponse{
		Route:          dto.PolylineFromDomain(res.Route),
		Candidates:     dto.CandidatesFromDomain(res.Candidates),
		SelectResponse: dto.SelectResponseFrom(res.Picks, res.Shortlist),
	})
}

func routeAndPrefs(w http.ResponseWriter, r *http.Request, p dto.Polyline, up *dto.UserPrefs) (domain.Route, domain.UserPreferences, bool) {
	route, err := p.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Route{}, domain.UserPreferences{}, false
	}

	prefs, err := up.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Route{}, domain.UserPreferences{}, false
	}

	return route, prefs, true
}
