package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/ports"
	"errors"
	"log"
	"net/http"
)

// InstanceHandler exposes read-only instance retrieval endpoints.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	items, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		log.Printf("list instances failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceSummaryResponse, 0, len(items)),
	}
	for _, it := range items {
		res.Instances = append(res.Instances, dto.InstanceSummaryResponse{
			Name:         it.Name,
			Nodes:        it.Nodes,
			Capacity:     it.Capacity,
			Depot:        it.Depot,
			HasReference: it.HasReference,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	name := r.PathValue("name")
	inst, err := h.Repo.GetInstance(r.Context(), name)
	if errors.Is(err, ports.ErrInstanceNotFound) {
		writeError(w, r, http.StatusNotFound, "instance not found")
		return
	}
	if err != nil {
		log.Printf("get instance failed: name=%s err=%v", name, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, instanceJSON(inst))
}

func instanceJSON(inst *domain.Instance) dto.InstanceJSON {
	coords := make([]dto.PointJSON, 0, len(inst.Coords))
	for _, p := range inst.Coords {
		coords = append(coords, dto.PointJSON{X: p.X, Y: p.Y})
	}

	var ref [][]int
	if len(inst.Reference) > 0 {
		ref = routesJSON(inst.Reference)
	}

	return dto.InstanceJSON{
		Name:      inst.Name,
		Coords:    coords,
		Demand:    append([]float64{}, inst.Demand...),
		Capacity:  inst.Capacity,
		Depot:     inst.Depot,
		Reference: ref,
	}
}

func instanceFromJSON(in *dto.InstanceJSON) *domain.Instance {
	coords := make([]domain.Point, 0, len(in.Coords))
	for _, p := range in.Coords {
		coords = append(coords, domain.Point{X: p.X, Y: p.Y})
	}

	var ref domain.Solution
	for _, r := range in.Reference {
		ref = append(ref, domain.Route(append([]int{}, r...)))
	}

	return &domain.Instance{
		Name:      in.Name,
		Coords:    coords,
		Demand:    append([]float64{}, in.Demand...),
		Capacity:  in.Capacity,
		Depot:     in.Depot,
		Reference: ref,
	}
}
