package smartprop

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	dbRedis "github.com/kailas-cloud/smartprop/internal/db/redis"
)

func newMockClient(t *testing.T, opts ...Option) (*Client, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	rc := mock.NewClient(ctrl)

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	c, err := wireClient(dbRedis.NewStoreForTest(rc), cfg)
	if err != nil {
		t.Fatalf("wireClient: %v", err)
	}
	return c, rc
}

func expectListings(rc *mock.Client, prefix string, docs ...string) {
	keys := make([]rueidis.RedisMessage, len(docs))
	results := make([]rueidis.RedisResult, len(docs))
	for i, d := range docs {
		keys[i] = mock.RedisString(prefix + "properties:p" + string(rune('1'+i)))
		results[i] = mock.Result(mock.RedisBlobString(d))
	}
	rc.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && cmd[3] == prefix+"properties:*"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0), mock.RedisArray(keys...))))
	rc.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return(results)
}

func TestNew_RequiresAddress(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error without WithRedis/WithValkey")
	}
}

func TestWireClient_RejectsWeakStructuralWeight(t *testing.T) {
	cfg := &clientConfig{structuralWeight: 2, keywordWeight: 1}
	if _, err := wireClient(dbRedis.NewStoreForTest(nil), cfg); err == nil {
		t.Fatal("expected weight validation error")
	}
}

func TestClient_Search(t *testing.T) {
	c, rc := newMockClient(t)
	expectListings(rc, "smartprop:",
		`{"bedrooms":3,"type":"apartment","price":450000,"location":"Austin"}`,
		`{"bedrooms":2,"type":"house","price":200000,"location":"Austin"}`,
	)

	res, err := c.Search(context.Background(), "3 Bedroom Apartment under 500000 in Austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Properties) != 1 || res.Properties[0]["id"] != "p1" {
		t.Fatalf("expected only p1, got %v", res.Properties)
	}
	if typ, ok := res.Filter.Match("type"); !ok || typ != "apartment" {
		t.Errorf("unexpected filter: %s", res.Filter)
	}
}

func TestClient_SearchInvalidInput(t *testing.T) {
	c, _ := newMockClient(t)

	_, err := c.Search(context.Background(), "\xff")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_KeyPrefix(t *testing.T) {
	c, rc := newMockClient(t, WithKeyPrefix("tenant-a:"))
	expectListings(rc, "tenant-a:", `{"price":1}`)

	props, err := c.Properties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("expected 1 property, got %d", len(props))
	}
}

func TestClient_UserNotFound(t *testing.T) {
	c, rc := newMockClient(t)
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "smartprop:users:ghost")).
		Return(mock.Result(mock.RedisNil()))

	_, err := c.User(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestClient_PutUsers(t *testing.T) {
	c, rc := newMockClient(t)
	rc.EXPECT().
		DoMulti(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "smartprop:users:u1"
		})).
		Return([]rueidis.RedisResult{mock.Result(mock.RedisString("OK"))})

	if err := c.PutUsers(context.Background(), map[string]User{"u1": {"name": "Ada"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, rc := newMockClient(t, WithPrometheus(reg))
	rc.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("ping", "error")); got != 1 {
		t.Errorf("expected 1 failed ping, got %v", got)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered collector to be reused")
	}
}

func TestGenerateTermsAndRank(t *testing.T) {
	f, err := GenerateTerms("pool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	listings := []Property{
		{"id": "a", "description": "quiet street"},
		{"id": "b", "description": "heated pool"},
	}

	ranked := Rank(listings, f)
	if len(ranked) != 2 || ranked[0]["id"] != "b" {
		t.Errorf("expected pool listing first, got %v", ranked)
	}
}
