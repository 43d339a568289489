package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"cvrp-route-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

const maxSolveBody = 8 << 20

type SolveHandler struct {
	Repo      ports.InstanceRepository
	Runs      ports.RunRepository
	Distances ports.DistanceModel
	Cache     ports.SolutionCache
	// DefaultAlgorithms is used when the request names none.
	DefaultAlgorithms []string
	// MaxNodes caps instance size; zero means no cap.
	MaxNodes int
}

// Solve runs the requested heuristics on a stored or inline instance.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSolveBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	name := strings.TrimSpace(req.Instance)
	if name == "" && req.Inline == nil {
		writeError(w, r, http.StatusBadRequest, "instance or inline_instance is required")
		return
	}
	if name != "" && req.Inline != nil {
		writeError(w, r, http.StatusBadRequest, "instance and inline_instance are mutually exclusive")
		return
	}

	svcReq := services.PlanRoutesRequest{
		InstanceName: name,
		Algorithms:   req.Algorithms,
		Persist:      req.Persist,
		MaxNodes:     h.MaxNodes,
	}
	if len(svcReq.Algorithms) == 0 {
		svcReq.Algorithms = h.DefaultAlgorithms
	}
	if req.Inline != nil {
		svcReq.Instance = instanceFromJSON(req.Inline)
		if strings.TrimSpace(svcReq.Instance.Name) == "" {
			svcReq.Instance.Name = "inline"
		}
	}

	runs, err := services.PlanRoutes(r.Context(), svcReq, h.Repo, h.Runs, h.Distances, h.Cache)
	if err != nil {
		status, msg := solveErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("plan routes failed: %v", err)
		}
		writeError(w, r, status, msg)
		return
	}

	res := dto.SolveResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toRunResponse(run))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// solveErrorStatus maps planning errors to an HTTP status and a client message.
func solveErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnknownAlgorithm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ports.ErrInstanceNotFound):
		return http.StatusNotFound, "instance not found"
	case errors.Is(err, domain.ErrMalformedInstance), errors.Is(err, domain.ErrInfeasibleNode):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
