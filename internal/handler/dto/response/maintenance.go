package response

import (
	"time"

	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"
)

type SweepResponse struct {
	Completed int      `json:"completed"`
	IDs       []string `json:"ids"`
	RanAt     string   `json:"ranAt"`
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	ids := make([]string, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = id.String()
	}
	return &SweepResponse{
		Completed: r.Completed,
		IDs:       ids,
		RanAt:     r.RanAt.UTC().Format(time.RFC3339),
	}
}

type DistanceResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DistanceMeters  int    `json:"distanceMeters"`
	DurationSeconds int    `json:"durationSeconds"`
	DistanceText    string `json:"distanceText"`
	DurationText    string `json:"durationText"`
}

func FromDistanceView(v *queries.DistanceView) *DistanceResponse {
	return &DistanceResponse{
		From:            v.From,
		To:              v.To,
		DistanceMeters:  v.DistanceMeters,
		DurationSeconds: v.DurationSeconds,
		DistanceText:    v.DistanceText,
		DurationText:    v.DurationText,
	}
}
