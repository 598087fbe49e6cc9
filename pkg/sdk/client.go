package smartprop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/smartprop/internal/db"
	dbRedis "github.com/kailas-cloud/smartprop/internal/db/redis"
	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
	"github.com/kailas-cloud/smartprop/internal/domain/search/filter"
	"github.com/kailas-cloud/smartprop/internal/domain/search/terms"
	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
	propertyrepo "github.com/kailas-cloud/smartprop/internal/repository/property"
	userrepo "github.com/kailas-cloud/smartprop/internal/repository/user"
	searchuc "github.com/kailas-cloud/smartprop/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "smartprop:"
)

// Property is a stored listing. Well-known fields are price, bedrooms,
// bathrooms, type, location (or city, address), title, description and
// amenities; any other field is kept as is.
type Property = domprop.Record

// User is a stored user profile.
type User = domuser.Record

// Filter is the structured form of a free-text query.
type Filter = filter.Filter

// SearchResult holds the ranked listings and the filter they were ranked by.
type SearchResult struct {
	Properties []Property
	Filter     Filter
}

// Internal interfaces, replaced in tests.
type searchUseCase interface {
	Search(ctx context.Context, query string) (searchuc.Result, error)
}

type propertyRepo interface {
	List(ctx context.Context) ([]domprop.Record, error)
	Get(ctx context.Context, id string) (domprop.Record, error)
	Put(ctx context.Context, props map[string]domprop.Record) error
}

type userRepo interface {
	List(ctx context.Context) ([]domuser.Record, error)
	Get(ctx context.Context, id string) (domuser.Record, error)
	Put(ctx context.Context, users map[string]domuser.Record) error
}

// Client is the smartprop SDK entry point.
type Client struct {
	store  db.Store
	search searchUseCase
	props  propertyRepo
	users  userRepo
	obs    *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("smartprop: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("smartprop: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("smartprop: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("smartprop: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	weights := searchuc.DefaultWeights()
	if cfg.structuralWeight != 0 || cfg.keywordWeight != 0 {
		weights = searchuc.Weights{Structural: cfg.structuralWeight, Keyword: cfg.keywordWeight}
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("smartprop: %w", err)
	}

	prefix := cfg.keyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	props := propertyrepo.New(store, prefix, nil)
	return &Client{
		store:  store,
		search: searchuc.New(props).WithWeights(weights).WithMaxResults(cfg.maxResults),
		props:  props,
		users:  userrepo.New(store, prefix, nil),
		obs:    obs,
	}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { c.obs.observe("ping", start, err) }(time.Now())
	return c.store.Ping(ctx)
}

// Search ranks every stored listing against a free-text query.
func (c *Client) Search(ctx context.Context, query string) (_ SearchResult, err error) {
	defer func(start time.Time) { c.obs.observe("search", start, err) }(time.Now())

	res, err := c.search.Search(ctx, query)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Properties: res.Properties, Filter: res.Filter}, nil
}

// Properties returns every stored listing ordered by id.
func (c *Client) Properties(ctx context.Context) (_ []Property, err error) {
	defer func(start time.Time) { c.obs.observe("properties.list", start, err) }(time.Now())
	return c.props.List(ctx)
}

// Property returns one listing or ErrPropertyNotFound.
func (c *Client) Property(ctx context.Context, id string) (_ Property, err error) {
	defer func(start time.Time) { c.obs.observe("properties.get", start, err) }(time.Now())
	return c.props.Get(ctx, id)
}

// PutProperties stores listings keyed by id, replacing existing ones.
func (c *Client) PutProperties(ctx context.Context, props map[string]Property) (err error) {
	defer func(start time.Time) { c.obs.observe("properties.put", start, err) }(time.Now())
	return c.props.Put(ctx, props)
}

// Users returns every stored user ordered by id.
func (c *Client) Users(ctx context.Context) (_ []User, err error) {
	defer func(start time.Time) { c.obs.observe("users.list", start, err) }(time.Now())
	return c.users.List(ctx)
}

// User returns one user or ErrUserNotFound.
func (c *Client) User(ctx context.Context, id string) (_ User, err error) {
	defer func(start time.Time) { c.obs.observe("users.get", start, err) }(time.Now())
	return c.users.Get(ctx, id)
}

// PutUsers stores users keyed by id, replacing existing ones.
func (c *Client) PutUsers(ctx context.Context, users map[string]User) (err error) {
	defer func(start time.Time) { c.obs.observe("users.put", start, err) }(time.Now())
	return c.users.Put(ctx, users)
}

// GenerateTerms converts a free-text query into a Filter. The query is used
// as given; Client.Search lower-cases it first.
func GenerateTerms(query string) (Filter, error) {
	return terms.Generate(query)
}

// Rank orders listings against a filter with the default weights, dropping
// listings that violate a range or exact predicate.
func Rank(props []Property, f Filter) []Property {
	return searchuc.GetBestChoice(props, f, searchuc.DefaultWeights())
}
