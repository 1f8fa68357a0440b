package handlers

import (
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/services"
)

// HostHandler exposes read-only host retrieval endpoints for the
// dashboard's stop picker.
type HostHandler struct {
	Planner *services.RoutePlanner
}

func (h *HostHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hosts, err := h.Planner.ListHosts(r.Context())
	if err != nil {
		log.Printf("list hosts failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListHostsResponse{
		Hosts: make([]dto.HostResponse, 0, len(hosts)),
	}
	for _, h := range hosts {
		res.Hosts = append(res.Hosts, dto.HostResponse{
			ID:   h.ID,
			Name: h.Name,
			Lat:  h.Coords.Lat,
			Lon:  h.Coords.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
