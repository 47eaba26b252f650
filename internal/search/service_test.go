package search_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/search"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

type stubTokens struct {
	token       string
	err         error
	calls       int
	invalidated int
}

func (s *stubTokens) Token(context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

func (s *stubTokens) Invalidate() { s.invalidated++ }

type stubFares struct {
	body   []byte
	err    error
	calls  int
	gotTok string
	gotReq upstream.SearchRequest
}

func (s *stubFares) FindLowFares(_ context.Context, token string, req upstream.SearchRequest) ([]byte, error) {
	s.calls++
	s.gotTok = token
	s.gotReq = req
	return s.body, s.err
}

type memoryCache struct {
	stored map[string][]models.Flight
}

func (m *memoryCache) Get(_ context.Context, i models.SearchIntent) ([]models.Flight, bool) {
	f, ok := m.stored[i.Origin+i.Destination]
	return f, ok
}

func (m *memoryCache) Set(_ context.Context, i models.SearchIntent, f []models.Flight) error {
	m.stored[i.Origin+i.Destination] = f
	return nil
}

func (m *memoryCache) Close() error { return nil }

func fixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("../upstream/testdata/find_low_fares.json")
	require.NoError(t, err)
	return body
}

func validIntent() models.SearchIntent {
	return models.SearchIntent{Origin: "lhr", Destination: "jfk", DepartureDate: "2025-06-01", Adults: 2}
}

func TestService_Search(t *testing.T) {
	tokens := &stubTokens{token: "tok"}
	fares := &stubFares{body: fixture(t)}
	svc := search.NewService(tokens, fares, search.Config{Logger: zerolog.Nop()})

	flights, err := svc.Search(context.Background(), validIntent())
	require.NoError(t, err)

	require.Len(t, flights, 2)
	assert.LessOrEqual(t, flights[0].Price, flights[1].Price)
	assert.Equal(t, "tok", fares.gotTok)
	assert.Equal(t, "LHR", fares.gotReq.RequestedFlights[0].DepartureLocation)
	assert.Equal(t, upstream.RequestTypeOneway, fares.gotReq.FlightRequestType)
}

func TestService_Validation(t *testing.T) {
	tokens := &stubTokens{token: "tok"}
	fares := &stubFares{}
	svc := search.NewService(tokens, fares, search.Config{})

	_, err := svc.Search(context.Background(), models.SearchIntent{Origin: "LHR"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"destination", "departureDate", "adults"}, verr.Fields)
	assert.Equal(t, http.StatusBadRequest, models.HTTPStatus(err))
	assert.Zero(t, tokens.calls, "no token is requested for invalid input")
	assert.Zero(t, fares.calls)
}

func TestService_TokenFailure(t *testing.T) {
	tokens := &stubTokens{err: &models.AuthError{Err: errors.New("invalid_grant")}}
	fares := &stubFares{}
	svc := search.NewService(tokens, fares, search.Config{})

	_, err := svc.Search(context.Background(), validIntent())

	var authErr *models.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusInternalServerError, models.HTTPStatus(err))
	assert.Zero(t, fares.calls)
}

func TestService_UpstreamFailure(t *testing.T) {
	t.Run("server error keeps token", func(t *testing.T) {
		tokens := &stubTokens{token: "tok"}
		fares := &stubFares{err: &models.UpstreamError{StatusCode: 502, Status: "502 Bad Gateway"}}
		svc := search.NewService(tokens, fares, search.Config{})

		_, err := svc.Search(context.Background(), validIntent())
		require.EqualError(t, err, "fare search request failed: 502 Bad Gateway")
		assert.Zero(t, tokens.invalidated)
	})

	t.Run("unauthorized drops token", func(t *testing.T) {
		tokens := &stubTokens{token: "tok"}
		fares := &stubFares{err: &models.UpstreamError{StatusCode: 401, Status: "401 Unauthorized"}}
		svc := search.NewService(tokens, fares, search.Config{})

		_, err := svc.Search(context.Background(), validIntent())
		require.Error(t, err)
		assert.Equal(t, 1, tokens.invalidated)
	})
}

func TestService_MalformedBodyIsEmpty(t *testing.T) {
	svc := search.NewService(&stubTokens{token: "tok"}, &stubFares{body: []byte(`"nope"`)}, search.Config{})

	flights, err := svc.Search(context.Background(), validIntent())
	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}

func TestService_CacheAndFilters(t *testing.T) {
	tokens := &stubTokens{token: "tok"}
	fares := &stubFares{body: fixture(t)}
	mem := &memoryCache{stored: map[string][]models.Flight{}}
	svc := search.NewService(tokens, fares, search.Config{Cache: mem})

	_, err := svc.Search(context.Background(), validIntent())
	require.NoError(t, err)

	direct := 0
	intent := validIntent()
	intent.Filters = &models.SearchFilters{MaxStops: &direct}

	flights, err := svc.Search(context.Background(), intent)
	require.NoError(t, err)

	assert.Equal(t, 1, fares.calls, "second search is served from cache")
	require.Len(t, flights, 1)
	assert.Equal(t, "REC-DIRECT", flights[0].ID)
}
