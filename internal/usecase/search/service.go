package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/domain"
	"github.com/kailas-cloud/smartprop/internal/domain/property"
	"github.com/kailas-cloud/smartprop/internal/domain/search/filter"
	"github.com/kailas-cloud/smartprop/internal/domain/search/terms"
	logpkg "github.com/kailas-cloud/smartprop/internal/logger"
	"github.com/kailas-cloud/smartprop/internal/metrics"
)

// Result is the outcome of one search.
type Result struct {
	Filter     filter.Filter
	Properties []property.Record
}

// Service runs free-text property searches.
type Service struct {
	props      PropertyReader
	weights    Weights
	maxResults int
}

// New creates a search service with default weights and no result cap.
func New(props PropertyReader) *Service {
	return &Service{props: props, weights: DefaultWeights()}
}

// WithWeights sets the score weights.
func (s *Service) WithWeights(w Weights) *Service {
	s.weights = w
	return s
}

// WithMaxResults caps the number of returned properties (0 = unlimited).
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// Search extracts terms from the query, loads all properties and ranks them.
// The query is lower-cased before extraction.
func (s *Service) Search(ctx context.Context, query string) (Result, error) {
	res, err := s.search(ctx, query)
	switch {
	case err == nil:
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.SearchRequestsTotal.WithLabelValues("invalid_input").Inc()
	default:
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
	}
	return res, err
}

func (s *Service) search(ctx context.Context, query string) (Result, error) {
	if !utf8.ValidString(query) {
		return Result{}, domain.NewInvalidInput("search term is not valid UTF-8 text")
	}
	f, err := terms.Generate(strings.ToLower(query))
	if err != nil {
		return Result{}, fmt.Errorf("generate terms: %w", err)
	}
	observeFilter(f)

	props, err := s.props.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list properties: %w", err)
	}

	start := time.Now()
	ranked := GetBestChoice(props, f, s.weights)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if s.maxResults > 0 && len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}
	metrics.SearchCandidates.Observe(float64(len(props)))
	metrics.SearchResults.Observe(float64(len(ranked)))

	logpkg.FromContext(ctx).Debug("search ranked",
		zap.Stringer("filter", f),
		zap.Int("candidates", len(props)),
		zap.Int("results", len(ranked)),
	)

	return Result{Filter: f, Properties: ranked}, nil
}

func observeFilter(f filter.Filter) {
	metrics.SearchPredicatesTotal.WithLabelValues("range").Add(float64(len(f.RangeFields())))
	metrics.SearchPredicatesTotal.WithLabelValues("exact").Add(float64(len(f.MatchFields())))
	metrics.SearchPredicatesTotal.WithLabelValues("keyword").Add(float64(len(f.Keywords())))
}
