package dto

import "mixtrail-service/internal/domain"

// ExportPick is the part of a pick or candidate the exports use. Clients may
// post whole candidate objects; the remaining fields are ignored.
type ExportPick struct {
	GCCode string  `json:"gc_code" validate:"required"`
	Name   string  `json:"name"`
	Coords *LatLng `json:"coords" validate:"required"`
}

func (p ExportPick) ToDomain() domain.Pick {
	return domain.Pick{Code: p.GCCode, Name: p.Name, Coords: p.Coords.ToDomain(), Reason: domain.PickReason}
}

func PicksToDomain(ps []ExportPick) []domain.Pick {
	out := make([]domain.Pick, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ToDomain())
	}
	return out
}

// ExportRequest is the body of the GPX and KML exports.
type ExportRequest struct {
	Picks []ExportPick `json:"picks" validate:"required,min=1,dive"`
	Route *Polyline    `json:"route" validate:"omitempty"`
}

type GeoJSONExportRequest struct {
	Route      *Polyline        `json:"route" validate:"omitempty"`
	Candidates []CacheCandidate `json:"candidates" validate:"dive"`
	Picks      []ExportPick     `json:"picks" validate:"dive"`
}

type ListPick struct {
	GCCode string `json:"gc_code" validate:"required"`
}

type GeocachingExportRequest struct {
	ListName string     `json:"listName" validate:"required,max=200"`
	Picks    []ListPick `json:"picks" validate:"required,min=1,dive"`
}

type GeocachingExportResponse struct {
	OK      bool   `json:"ok"`
	ListURL string `json:"listUrl"`
}
