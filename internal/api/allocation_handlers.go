package api

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yourusername/keiba-desk/internal/betting"
	"github.com/yourusername/keiba-desk/internal/models"
	"github.com/yourusername/keiba-desk/internal/service"
)

type allocationRequest struct {
	BetType   string         `json:"bet_type" validate:"required"`
	Selected  []string       `json:"selected" validate:"omitempty,dive,required"`
	Budget    *int           `json:"budget" validate:"omitempty,gte=0"`
	Auto      *bool          `json:"auto"`
	Overrides map[string]int `json:"overrides" validate:"omitempty,dive,gte=0"`
}

type combinationRow struct {
	Horses          []string         `json:"horses"`
	Key             string           `json:"key"`
	Amount          int              `json:"amount"`
	EstimatedReturn *decimal.Decimal `json:"estimated_return,omitempty"`
}

type allocationResponse struct {
	BetType        string           `json:"bet_type"`
	Label          string           `json:"label"`
	Pool           []string         `json:"pool"`
	FellBack       bool             `json:"fell_back"`
	Combinations   []combinationRow `json:"combinations"`
	Budget         int              `json:"budget"`
	TotalAllocated int              `json:"total_allocated"`
	Shortfall      int              `json:"shortfall"`
	Count          int              `json:"count"`
	DisplayLimit   int              `json:"display_limit"`
}

func (s *Server) toDeskRequest(req allocationRequest) service.AllocationRequest {
	budget := s.desk.DefaultBudget()
	if req.Budget != nil {
		budget = *req.Budget
	}
	return service.AllocationRequest{
		BetType:   req.BetType,
		Selected:  req.Selected,
		Budget:    budget,
		Auto:      req.Auto,
		Overrides: req.Overrides,
	}
}

func newAllocationResponse(res *betting.Result, limit int) allocationResponse {
	rows := res.Display(limit)
	out := allocationResponse{
		BetType:        res.BetType.String(),
		Label:          res.BetType.Label(),
		Pool:           res.Pool,
		FellBack:       res.FellBack,
		Combinations:   make([]combinationRow, 0, len(rows)),
		Budget:         res.Budget,
		TotalAllocated: res.Total(),
		Shortfall:      res.Shortfall(),
		Count:          res.Len(),
		DisplayLimit:   limit,
	}
	for _, row := range rows {
		cr := combinationRow{Horses: row.Combination, Key: row.Combination.Key(), Amount: row.Amount}
		if ret, ok := res.EstimatedReturn(cr.Key); ok {
			cr.EstimatedReturn = &ret
		}
		out.Combinations = append(out.Combinations, cr)
	}
	return out
}

func (s *Server) allocate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req allocationRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.desk.Allocate(r.Context(), id, s.toDeskRequest(req))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newAllocationResponse(res, s.desk.DisplayLimit()))
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req allocationRequest
	if err := s.decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	purchase, err := s.desk.Simulate(r.Context(), id, s.toDeskRequest(req))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, purchase)
}

func (s *Server) listSimulations(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "sessionID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	purchases, err := s.desk.Purchases(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}
	s.respondJSON(w, http.StatusOK, purchases)
}

func (s *Server) getSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "purchaseID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	purchase, err := s.desk.Purchase(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, purchase)
}
