package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/domain"
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func routesJSON(sol domain.Solution) [][]int {
	out := make([][]int, 0, len(sol))
	for _, r := range sol {
		out = append(out, append([]int{}, r...))
	}
	return out
}

func toRunResponse(run *domain.Run) dto.RunResponse {
	return dto.RunResponse{
		ID:                run.ID,
		Instance:          run.InstanceName,
		Algorithm:         run.Algorithm,
		Routes:            routesJSON(run.Routes),
		TotalDistance:     run.TotalDistance,
		ReferenceDistance: run.ReferenceDistance,
		GapPercent:        run.GapPercent,
		Cached:            run.Cached,
		ElapsedMicros:     run.Elapsed.Microseconds(),
		CreatedAt:         run.CreatedAt,
	}
}
