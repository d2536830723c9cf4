package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsRegistered(t *testing.T) {
	NodesPlaced.Inc()
	Clicks.WithLabelValues("output", "started").Inc()
	EvalDuration.Observe(0.01)

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["vlisp_nodes_placed_total"])
	assert.True(t, names["vlisp_clicks_total"])
	assert.True(t, names["vlisp_eval_duration_seconds"])
}

func TestClicksByOutcome(t *testing.T) {
	before := testutil.ToFloat64(Clicks.WithLabelValues("input", "ignored"))
	Clicks.WithLabelValues("input", "ignored").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Clicks.WithLabelValues("input", "ignored")))
}

func TestServerExposesRegistry(t *testing.T) {
	NodesMoved.Inc()

	srv := httptest.NewServer(NewServer().Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vlisp_nodes_moved_total")
	assert.Contains(t, string(body), "vlisp_eval_duration_seconds_bucket")

	resp2, err := http.Get(srv.URL + "/other")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
