package queries

import (
	"context"
	"strings"
)

type DistanceView struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	DistanceText    string `json:"distance_text"`
	DurationText    string `json:"duration_text"`
}

// DistanceProvider is implemented by the mapping service client.
type DistanceProvider interface {
	Distance(ctx context.Context, from, to string) (*DistanceView, error)
}

type DistanceQueries interface {
	Between(ctx context.Context, from, to string) (*DistanceView, error)
}

type distanceQueriesImpl struct {
	provider DistanceProvider
}

func NewDistanceQueries(provider DistanceProvider) DistanceQueries {
	return &distanceQueriesImpl{provider: provider}
}

func (q *distanceQueriesImpl) Between(ctx context.Context, from, to string) (*DistanceView, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, ErrInvalidAddress
	}
	return q.provider.Distance(ctx, from, to)
}
