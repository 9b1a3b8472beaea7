package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/salons/1", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_, _ = w.Write([]byte(`{"id":1,"name":"Barber One","manager_ids":[100,101]}`))
	})
	mux.HandleFunc("/internal/salons/1/services", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "10,11", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`[
			{"id":10,"name":{"ru":"Стрижка","en":"Haircut"},"price":1500,"duration":60},
			{"id":11,"name":"Борода","duration":30}
		]`))
	})
	mux.HandleFunc("/internal/salons/1/masters", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_, _ = w.Write([]byte(`[
			{"id":1,"user_id":201,"name":"Anna","status":"active"},
			{"id":2,"user_id":202,"name":"Boris","status":"terminated"},
			{"id":3,"user_id":203,"name":"Vera"}
		]`))
	})
	mux.HandleFunc("/internal/salons/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/internal/salons/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	mux.HandleFunc("/internal/salons/4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetSalon(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL+"/", time.Second, nopLogger{})

	salon, err := client.GetSalon(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), salon.ID)
	assert.True(t, salon.IsManager(101))
	assert.False(t, salon.IsManager(7))
}

func TestClient_GetSalon_Errors(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetSalon(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = client.GetSalon(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetSalon(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetServices(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	services, err := client.GetServices(context.Background(), 1, []int64{11, 10}, "en")
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, int64(11), services[0].ID)
	assert.Equal(t, "Борода", services[0].Name)
	assert.Equal(t, 30, services[0].DurationMinutes)
	assert.Equal(t, 0.0, services[0].Price)

	assert.Equal(t, "Haircut", services[1].Name)
	assert.Equal(t, 1500.0, services[1].Price)
}

func TestClient_GetServices_Missing(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetServices(context.Background(), 1, nil, "ru")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestClient_GetMasters(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	masters, err := client.GetMasters(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, masters, 3)
	assert.Equal(t, domain.MasterActive, masters[0].Status)
	assert.Equal(t, domain.MasterTerminated, masters[1].Status)
	assert.Equal(t, domain.MasterActive, masters[2].Status)
	assert.Equal(t, int64(203), masters[2].UserID)
}

func TestClient_RedisCache(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := NewClient(srv.URL, time.Second, nopLogger{})
	client.UseRedisCache(rdb, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		salon, err := client.GetSalon(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Barber One", salon.Name)
	}
	assert.Equal(t, 1, hits)
	assert.True(t, mr.Exists("catalog:salon:1"))

	for i := 0; i < 2; i++ {
		services, err := client.GetServices(ctx, 1, []int64{10, 11}, "ru")
		require.NoError(t, err)
		assert.Equal(t, "Стрижка", services[0].Name)
	}
	assert.Equal(t, 2, hits)

	mr.FastForward(2 * time.Minute)
	_, err := client.GetSalon(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, hits)
}

func TestServiceName_Resolve(t *testing.T) {
	tests := []struct {
		name string
		in   ServiceName
		lang string
		want string
	}{
		{name: "plain", in: ServiceName{Plain: "Cut"}, lang: "en", want: "Cut"},
		{name: "requested language", in: ServiceName{Localized: map[string]string{"ru": "Стрижка", "en": "Haircut"}}, lang: "en", want: "Haircut"},
		{name: "default language", in: ServiceName{Localized: map[string]string{"ru": "Стрижка", "en": "Haircut"}}, lang: "de", want: "Стрижка"},
		{name: "first by key", in: ServiceName{Localized: map[string]string{"fr": "Coupe", "en": "Haircut"}}, lang: "de", want: "Haircut"},
		{name: "empty", in: ServiceName{}, lang: "ru", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Resolve(tt.lang))
		})
	}
}
