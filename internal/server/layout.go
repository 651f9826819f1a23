package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/iwvelando/artillery-calculator/pkg/group"
	"go.uber.org/zap"
)

type gridPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type layoutMove struct {
	Unit int `json:"unit"`
	gridPosition
}

// layoutRequest rebuilds a grid from stored units, then replays placements,
// moves and removals in that order. Moves and removals refer to units by
// their index in the stored units followed by the placements.
type layoutRequest struct {
	Central struct {
		Distance float64 `json:"distance"`
		Azimuth  float64 `json:"azimuth"`
	} `json:"central"`
	Units      []group.Unit   `json:"units,omitempty"`
	Placements []gridPosition `json:"placements"`
	Moves      []layoutMove   `json:"moves,omitempty"`
	Remove     []int          `json:"remove,omitempty"`
}

type layoutUnit struct {
	ID                string           `json:"id"`
	Number            int              `json:"number"`
	X                 float64          `json:"x"`
	Y                 float64          `json:"y"`
	IsCentral         bool             `json:"central"`
	DistanceToCentral float64          `json:"distanceToCentral"`
	Correction        group.Correction `json:"correction"`
}

func (h *handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	op := "server.handleLayout"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if req.Central.Distance < 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "central distance must not be negative", op)
		return
	}

	units, err := replayLayout(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, group.ErrCellOccupied) {
			status = http.StatusConflict
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	h.logger.Debug("layout computed",
		zap.String("op", op),
		zap.Int("units", len(units)),
	)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"units": units,
	})
}

func replayLayout(req layoutRequest) ([]layoutUnit, error) {
	layout := group.NewLayout()
	ids := make([]string, 0, len(req.Units)+len(req.Placements))
	for _, stored := range req.Units {
		if err := layout.Add(stored); err != nil {
			return nil, err
		}
		placed := layout.Units()
		ids = append(ids, placed[len(placed)-1].ID)
	}
	for _, p := range req.Placements {
		u, err := layout.Place(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		ids = append(ids, u.ID)
	}

	unitAt := func(idx int) (string, error) {
		if idx < 0 || idx >= len(ids) {
			return "", fmt.Errorf("%w: index %d", group.ErrUnitNotFound, idx)
		}
		return ids[idx], nil
	}
	for _, m := range req.Moves {
		id, err := unitAt(m.Unit)
		if err != nil {
			return nil, err
		}
		if err := layout.Move(id, m.X, m.Y); err != nil {
			return nil, err
		}
	}
	for _, idx := range req.Remove {
		id, err := unitAt(idx)
		if err != nil {
			return nil, err
		}
		if err := layout.Remove(id); err != nil {
			return nil, err
		}
	}

	central := group.CentralSolution{BaseDistance: req.Central.Distance, BaseAzimuth: req.Central.Azimuth}
	if _, err := layout.Corrections(central); err != nil {
		return nil, err
	}

	units := make([]layoutUnit, 0, layout.Len())
	if layout.Len() == 0 {
		return units, nil
	}
	centralUnit, err := group.FindCentral(layout.Units())
	if err != nil {
		return nil, err
	}
	for _, u := range layout.Units() {
		number, err := layout.Number(u.ID)
		if err != nil {
			return nil, err
		}
		distance, err := layout.Distance(centralUnit.ID, u.ID)
		if err != nil {
			return nil, err
		}
		units = append(units, layoutUnit{
			ID:                u.ID,
			Number:            number,
			X:                 u.GridX,
			Y:                 u.GridY,
			IsCentral:         u.IsCentral,
			DistanceToCentral: distance,
			Correction:        u.Correction,
		})
	}
	return units, nil
}
