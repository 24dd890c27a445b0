package sources

import (
	"context"
	"fmt"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	"marketcycle/internal/series"
	xhttp "marketcycle/pkg/http"
)

// HTTPSnapshotSource fetches the current snapshot from a URL. A non-success
// response surfaces as a fetch failure so the ingestor can fall back.
type HTTPSnapshotSource struct {
	url    string
	client *xhttp.Client
}

func NewHTTPSnapshotSource(url string, client *xhttp.Client) *HTTPSnapshotSource {
	return &HTTPSnapshotSource{url: url, client: client}
}

func (s *HTTPSnapshotSource) Name() string { return s.url }

func (s *HTTPSnapshotSource) Fetch(ctx context.Context) (*models.CurrentSnapshot, error) {
	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch snapshot: %v", drepo.ErrFetch, err)
	}
	snap, err := models.ParseSnapshot(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drepo.ErrParse, err)
	}
	return snap, nil
}

// HTTPSeriesSource fetches one historical series from a URL.
type HTTPSeriesSource struct {
	url    string
	format series.Format
	client *xhttp.Client
}

func NewHTTPSeriesSource(url string, format series.Format, client *xhttp.Client) *HTTPSeriesSource {
	return &HTTPSeriesSource{url: url, format: format, client: client}
}

func (s *HTTPSeriesSource) Name() string { return s.url }

func (s *HTTPSeriesSource) Fetch(ctx context.Context) (models.HistoricalSeries, error) {
	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch series: %v", drepo.ErrFetch, err)
	}
	out, err := series.Parse(body, s.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", drepo.ErrParse, err)
	}
	return out, nil
}

var (
	_ drepo.SnapshotSource = (*HTTPSnapshotSource)(nil)
	_ drepo.SeriesSource   = (*HTTPSeriesSource)(nil)
)
