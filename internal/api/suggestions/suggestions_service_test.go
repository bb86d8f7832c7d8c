package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wanderspark-api/config"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

type MockTravelProvider struct {
	mock.Mock
}

func (m *MockTravelProvider) LookupTravel(ctx context.Context, source, destination string) ([]types.TravelSuggestion, error) {
	args := m.Called(ctx, source, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TravelSuggestion), args.Error(1)
}

type MockStayProvider struct {
	mock.Mock
}

func (m *MockStayProvider) LookupStay(ctx context.Context, destination string) ([]types.StaySuggestion, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.StaySuggestion), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDummyProvider_LookupTravel(t *testing.T) {
	p := NewDummyProvider(testLogger())

	out, err := p.LookupTravel(context.Background(), "Mumbai", "Goa")
	require.NoError(t, err)
	require.Len(t, out, 6)

	perMode := map[types.TravelMode]int{}
	for _, s := range out {
		require.NoError(t, s.Validate())
		perMode[s.Mode]++
		assert.GreaterOrEqual(t, int64(s.Price), int64(300))
		assert.Contains(t, s.Duration, "hours")
	}
	assert.Equal(t, 2, perMode[types.TravelModeFlight])
	assert.Equal(t, 2, perMode[types.TravelModeTrain])
	assert.Equal(t, 2, perMode[types.TravelModeBus])

	_, err = p.LookupTravel(context.Background(), "", "Goa")
	assert.ErrorIs(t, err, ErrEmptyPlace)
}

func TestDummyProvider_PriceBounds(t *testing.T) {
	p := NewDummyProvider(testLogger())
	p.intN = func(n int) int { return n - 1 }
	p.float = func() float64 { return 0 }

	travel, err := p.LookupTravel(context.Background(), "Mumbai", "Goa")
	require.NoError(t, err)
	assert.Equal(t, types.Rupees(3500+3999), travel[0].Price)
	assert.Equal(t, "1.5 hours", travel[0].Duration)

	stay, err := p.LookupStay(context.Background(), "Goa")
	require.NoError(t, err)
	assert.Equal(t, "Ocean View Resort", stay[2].Name)
	assert.Equal(t, types.Rupees(10000+7999), stay[2].Price)
}

func TestDummyProvider_LookupStay(t *testing.T) {
	p := NewDummyProvider(testLogger())

	out, err := p.LookupStay(context.Background(), "Goa")
	require.NoError(t, err)

	seen := map[types.StayType]bool{}
	for _, s := range out {
		require.NoError(t, s.Validate())
		seen[s.Type] = true
	}
	for _, want := range []types.StayType{types.StayTypeHotel, types.StayTypeHostel, types.StayTypeResort, types.StayTypeBoutiqueHotel} {
		assert.True(t, seen[want], "missing %s", want)
	}

	_, err = p.LookupStay(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPlace)
}

func TestServiceImpl_LookupTravelCaches(t *testing.T) {
	ctx := context.Background()
	travel := new(MockTravelProvider)
	want := []types.TravelSuggestion{{Mode: types.TravelModeTrain, Details: "Shatabdi Express", Price: 900, Duration: "9.0 hours"}}
	travel.On("LookupTravel", mock.Anything, "Mumbai", "Goa").Return(want, nil).Once()

	svc := NewServiceImpl(travel, new(MockStayProvider), NewMemoryCache(time.Minute, time.Minute), testLogger())

	first, err := svc.LookupTravel(ctx, "Mumbai", "Goa")
	require.NoError(t, err)
	second, err := svc.LookupTravel(ctx, " mumbai ", "GOA")
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	travel.AssertNumberOfCalls(t, "LookupTravel", 1)
}

func TestServiceImpl_LookupStayFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("provider error propagates", func(t *testing.T) {
		stay := new(MockStayProvider)
		boom := errors.New("booking api down")
		stay.On("LookupStay", mock.Anything, "Goa").Return(nil, boom).Once()
		svc := NewServiceImpl(new(MockTravelProvider), stay, nil, testLogger())

		_, err := svc.LookupStay(ctx, "Goa")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty result is an error", func(t *testing.T) {
		stay := new(MockStayProvider)
		stay.On("LookupStay", mock.Anything, "Goa").Return([]types.StaySuggestion{}, nil).Once()
		svc := NewServiceImpl(new(MockTravelProvider), stay, nil, testLogger())

		_, err := svc.LookupStay(ctx, "Goa")
		assert.ErrorIs(t, err, types.ErrEmptyOutput)
	})

	t.Run("empty destination never reaches the provider", func(t *testing.T) {
		stay := new(MockStayProvider)
		svc := NewServiceImpl(new(MockTravelProvider), stay, nil, testLogger())

		_, err := svc.LookupStay(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyPlace)
		stay.AssertNotCalled(t, "LookupStay", mock.Anything, mock.Anything)
	})
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	in := []types.StaySuggestion{{Name: "Cozy Inn Boutique", Type: types.StayTypeBoutiqueHotel, Rating: 4.6, Price: 7000}}
	require.NoError(t, c.Set(ctx, "stay:goa", in))

	in[0].Name = "mutated"
	var out []types.StaySuggestion
	found, err := c.Get(ctx, "stay:goa", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Cozy Inn Boutique", out[0].Name)

	found, err = c.Get(ctx, "stay:nowhere", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewCache_UnknownBackend(t *testing.T) {
	c, err := NewCache(cacheConfig("memcached"))
	assert.Error(t, err)
	assert.Nil(t, c)

	c, err = NewCache(cacheConfig("memory"))
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
}

func TestTools(t *testing.T) {
	ctx := context.Background()
	p := NewDummyProvider(testLogger())

	travel := NewTravelTool(p)
	assert.Equal(t, TravelToolName, travel.Declaration().Name)
	assert.ElementsMatch(t, []string{"source", "destination"}, travel.Declaration().Parameters.Required)

	out, err := travel.Call(ctx, map[string]any{"source": "Mumbai", "destination": "Goa"})
	require.NoError(t, err)
	assert.Len(t, out, 6)

	_, err = travel.Call(ctx, map[string]any{"source": "Mumbai"})
	assert.Error(t, err)

	stay := NewStayTool(p)
	assert.Equal(t, StayToolName, stay.Declaration().Name)
	out, err = stay.Call(ctx, map[string]any{"destination": "Goa"})
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestHandlerImpl(t *testing.T) {
	p := NewDummyProvider(testLogger())
	h := NewHandlerImpl(NewServiceImpl(p, p, nil, testLogger()), testLogger())

	t.Run("travel ok", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetTravelSuggestions(rr, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions/travel?source=Mumbai&destination=Goa", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var out []types.TravelSuggestion
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Len(t, out, 6)
	})

	t.Run("travel missing source", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetTravelSuggestions(rr, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions/travel?destination=Goa", nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body types.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Fields, 1)
		assert.Equal(t, "source", body.Fields[0].Field)
	})

	t.Run("stay provider failure is a bad gateway", func(t *testing.T) {
		stay := new(MockStayProvider)
		stay.On("LookupStay", mock.Anything, "Goa").Return(nil, errors.New("down"))
		h := NewHandlerImpl(NewServiceImpl(p, stay, nil, testLogger()), testLogger())

		rr := httptest.NewRecorder()
		h.GetStaySuggestions(rr, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions/stay?destination=Goa", nil))
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), types.UserMessage)
	})
}

func cacheConfig(backend string) config.CacheConfig {
	return config.CacheConfig{Backend: backend, TTL: time.Minute, Cleanup: time.Minute}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	want := []types.StaySuggestion{{Name: "Ocean View Resort", Type: types.StayTypeResort, Rating: 4.5, Price: 8000}}

	tests := []struct {
		name    string
		setup   func(t *testing.T, mr *miniredis.Miniredis, c *RedisCache)
		key     string
		wantHit bool
		wantErr bool
	}{
		{
			name:  "miss",
			setup: func(*testing.T, *miniredis.Miniredis, *RedisCache) {},
			key:   "stay:goa",
		},
		{
			name: "hit",
			setup: func(t *testing.T, _ *miniredis.Miniredis, c *RedisCache) {
				require.NoError(t, c.Set(ctx, "stay:goa", want))
			},
			key:     "stay:goa",
			wantHit: true,
		},
		{
			name: "undecodable entry",
			setup: func(t *testing.T, mr *miniredis.Miniredis, _ *RedisCache) {
				require.NoError(t, mr.Set("wanderspark:suggestions:stay:goa", "not json"))
			},
			key:     "stay:goa",
			wantErr: true,
		},
		{
			name: "expired entry",
			setup: func(t *testing.T, mr *miniredis.Miniredis, c *RedisCache) {
				require.NoError(t, c.Set(ctx, "stay:goa", want))
				mr.FastForward(2 * time.Minute)
			},
			key: "stay:goa",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := miniredis.RunT(t)
			c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
			defer c.Close()
			tt.setup(t, mr, c)

			var got []types.StaySuggestion
			hit, err := c.Get(ctx, tt.key, &got)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, hit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, want, got)
			}
		})
	}

	t.Run("entries are prefixed and carry the ttl", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
		defer c.Close()

		require.NoError(t, c.Set(ctx, "travel:delhi:goa", want))
		assert.True(t, mr.Exists("wanderspark:suggestions:travel:delhi:goa"))
		assert.Equal(t, time.Minute, mr.TTL("wanderspark:suggestions:travel:delhi:goa"))
	})

	t.Run("unreachable server is an error, not a miss", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), time.Minute)
		defer c.Close()
		mr.Close()

		var got []types.StaySuggestion
		hit, err := c.Get(ctx, "stay:goa", &got)
		assert.Error(t, err)
		assert.False(t, hit)
		assert.Error(t, c.Set(ctx, "stay:goa", want))
	})

	t.Run("closed client rejects calls", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
		require.NoError(t, c.Close())
		assert.ErrorIs(t, c.Set(ctx, "stay:goa", want), redis.ErrClosed)
	})
}

func TestNewCache_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := cacheConfig("Redis")
	cfg.Redis.Addr = mr.Addr()

	c, err := NewCache(cfg)
	require.NoError(t, err)
	rc, ok := c.(*RedisCache)
	require.True(t, ok)
	defer rc.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []string{"a"}))
	var got []string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a"}, got)
}
