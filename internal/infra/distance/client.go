package distance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ekicare/internal/pkg/config"
	"ekicare/internal/pkg/errs"
	"ekicare/internal/usecase/queries"
)

const matrixPath = "/distancematrix/json"

var (
	ErrRouteNotFound      = errs.Mark(errs.New("no route between the addresses"), errs.ErrNotFound)
	ErrUpstreamFailure    = errs.Mark(errs.New("mapping service unavailable"), errs.ErrTransient)
	ErrProviderNotEnabled = errs.Mark(errs.New("mapping service is not configured"), errs.ErrTransient)
)

type matrixResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Rows         []matrixRow `json:"rows"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixElement struct {
	Status   string      `json:"status"`
	Distance matrixValue `json:"distance"`
	Duration matrixValue `json:"duration"`
}

type matrixValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Client queries a distance-matrix style HTTP API for a single origin and destination.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.DistanceConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Distance(ctx context.Context, from, to string) (*queries.DistanceView, error) {
	if c.baseURL == "" {
		return nil, ErrProviderNotEnabled
	}

	q := url.Values{}
	q.Set("origins", from)
	q.Set("destinations", to)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+matrixPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build distance request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "distance request failed"), ErrUpstreamFailure)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errs.Mark(
			errs.Newf("distance api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			ErrUpstreamFailure,
		)
	}

	var payload matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode distance response"), ErrUpstreamFailure)
	}
	if payload.Status != "OK" {
		return nil, errs.Mark(
			errs.Newf("distance api status %s: %s", payload.Status, payload.ErrorMessage),
			ErrUpstreamFailure,
		)
	}
	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return nil, ErrRouteNotFound
	}

	el := payload.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, errs.Mark(errs.Newf("element status %s", el.Status), ErrRouteNotFound)
	}

	return &queries.DistanceView{
		From:            from,
		To:              to,
		DistanceMeters:  el.Distance.Value,
		DurationSeconds: el.Duration.Value,
		DistanceText:    el.Distance.Text,
		DurationText:    el.Duration.Text,
	}, nil
}

