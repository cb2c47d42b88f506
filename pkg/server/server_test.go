package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/models/api"
	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
	"github.com/fin-tools/expense-atlas/pkg/store/artifact"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := artifact.NewFS(t.TempDir())
	sess := session.New(session.Options{
		Budgets: domain.Budgets{"Food": decimal.NewFromInt(500)},
		Builder: report.NewBuilder(nil, nil, store),
	})

	router := ConfigureRouter(Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			Session:   sess,
			Artifacts: store,
			Logger:    zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestWebAPI_Endpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/table/sample", "application/json",
		bytes.NewBufferString(`{"rows": 50, "seed": 42}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loaded api.LoadTableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	assert.Equal(t, 50, loaded.Rows)

	resp, err = http.Get(srv.URL + "/api/v1/budgets")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var budgets map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&budgets))
	assert.Equal(t, "500.00", budgets["Food"])

	resp, err = http.Post(srv.URL+"/api/v1/reports", "application/json",
		bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep api.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, 50, rep.Summary.Count)
}

func TestWebAPI_BadTableRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/table", "text/csv",
		bytes.NewBufferString("date,description\n2025-01-01,coffee\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var apiErr api.Error
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Contains(t, apiErr.Error, "amount")
}
