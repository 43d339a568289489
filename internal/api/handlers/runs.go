package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/ports"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const maxRunsLimit = 500

type RunHandler struct {
	Runs ports.RunRepository
}

// List returns recent runs, optionally filtered by ?instance= and capped by ?limit=.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("instance"))

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), name, limit)
	if err != nil {
		log.Printf("list runs failed: instance=%s err=%v", name, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run))
	}

	writeJSON(w, r, http.StatusOK, res)
}
