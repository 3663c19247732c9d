package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph-backend/application/queries"
	"relgraph-backend/infrastructure/config"
	"relgraph-backend/infrastructure/di"
	"relgraph-backend/interfaces/http/rest"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddress: ":0",
		Environment:   "test",
		LogLevel:      "error",
		EnableCORS:    false,
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *di.Container) {
	t.Helper()

	container, err := di.InitializeContainer(context.Background(), testConfig())
	require.NoError(t, err)

	router := rest.NewRouter(container.QueryBus, container.Config, container.Logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	return server, container
}

// snapshotPayload covers every signal source in one request: a business
// context clique, a referral, a recruiting pair, co-attendance,
// communication, a co-mention, a ghost mention, a family deduction, and
// one person connected to nothing.
func snapshotPayload() map[string]interface{} {
	return map[string]interface{}{
		"people": []map[string]interface{}{
			{"id": "alice", "display_name": "Alice", "primary_role": "agent"},
			{"id": "bob", "display_name": "Bob"},
			{"id": "carol", "display_name": "Carol"},
			{"id": "dave", "display_name": "Dave"},
			{"id": "eve", "display_name": "Eve"},
			{"id": "loner", "display_name": "Loner"},
		},
		"contexts": []map[string]interface{}{
			{"id": "ctx1", "type": "business", "participant_ids": []string{"alice", "bob", "carol"}},
		},
		"referrals": []map[string]interface{}{
			{"referrer_id": "alice", "referred_id": "dave"},
		},
		"recruiting": []map[string]interface{}{
			{"recruiter_id": "bob", "recruit_id": "eve", "stage": "onboarding"},
		},
		"co_attendance": []map[string]interface{}{
			{"person_a_id": "carol", "person_b_id": "dave", "meeting_count": 5},
		},
		"communications": []map[string]interface{}{
			{"person_a_id": "alice", "person_b_id": "eve", "evidence_count": 10, "direction": "balanced"},
		},
		"co_mentions": []map[string]interface{}{
			{"person_a_id": "bob", "person_b_id": "dave", "co_mention_count": 3},
		},
		"ghost_mentions": []map[string]interface{}{
			{"name": "Uncle Bob", "suggested_role": "family", "mentioned_by_ids": []string{"alice"}},
		},
		"family_links": []map[string]interface{}{
			{"person_a_id": "carol", "person_b_id": "eve", "deduction_id": "ded-1", "relation": "cousin", "is_confirmed": false},
		},
	}
}

func postJSON(t *testing.T, server *httptest.Server, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func decodeData(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestAssembleEndToEnd(t *testing.T) {
	server, _ := newTestServer(t)

	resp, body := postJSON(t, server, "/api/v1/graph/assemble", snapshotPayload())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result queries.AssembleGraphResult
	decodeData(t, body, &result)

	// 6 people plus one ghost.
	assert.Equal(t, 7, result.Stats.NodeCount)
	// 3 clique + referral + recruiting + co-attendance + communication +
	// co-mention + ghost mention + family.
	assert.Equal(t, 10, result.Stats.EdgeCount)
	assert.Equal(t, 1, result.Stats.GhostCount)
	assert.Equal(t, 1, result.Stats.OrphanCount)

	degreeByID := make(map[string]int, len(result.Nodes))
	orphanByID := make(map[string]bool, len(result.Nodes))
	for _, node := range result.Nodes {
		degreeByID[node.ID] = node.Degree
		orphanByID[node.ID] = node.IsOrphaned
	}
	assert.True(t, orphanByID["loner"])
	assert.Zero(t, degreeByID["loner"])
	// Alice: two clique edges, referral, communication, ghost mention.
	assert.Equal(t, 5, degreeByID["alice"])
}

func TestLayoutEndToEnd(t *testing.T) {
	server, _ := newTestServer(t)

	payload := snapshotPayload()
	payload["canvas"] = map[string]float64{"width": 1200, "height": 800}
	payload["iterations"] = 100
	payload["clusters"] = []map[string]interface{}{
		{"label": "acme", "member_ids": []string{"alice", "bob", "carol"}},
	}

	resp, body := postJSON(t, server, "/api/v1/graph/layout", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result queries.ComputeLayoutResult
	decodeData(t, body, &result)

	assert.True(t, result.Completed)
	require.Equal(t, 7, result.Stats.NodeCount)
	for _, node := range result.Nodes {
		require.False(t, math.IsNaN(node.Position.X) || math.IsNaN(node.Position.Y),
			"node %s has an invalid position", node.ID)
		require.False(t, math.IsInf(node.Position.X, 0) || math.IsInf(node.Position.Y, 0))
	}

	// No two distinct nodes may share the exact same final position.
	seen := make(map[[2]float64]string, len(result.Nodes))
	for _, node := range result.Nodes {
		key := [2]float64{node.Position.X, node.Position.Y}
		if other, dup := seen[key]; dup {
			t.Fatalf("nodes %s and %s ended at the same position", other, node.ID)
		}
		seen[key] = node.ID
	}
}

func TestLayoutEndToEndDeterministic(t *testing.T) {
	server, _ := newTestServer(t)

	payload := snapshotPayload()
	// Drop ghost mentions so node ids are stable across requests.
	delete(payload, "ghost_mentions")
	payload["canvas"] = map[string]float64{"width": 800, "height": 600}
	payload["iterations"] = 60

	run := func() map[string][2]float64 {
		resp, body := postJSON(t, server, "/api/v1/graph/layout", payload)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var result queries.ComputeLayoutResult
		decodeData(t, body, &result)

		positions := make(map[string][2]float64, len(result.Nodes))
		for _, node := range result.Nodes {
			positions[node.ID] = [2]float64{node.Position.X, node.Position.Y}
		}
		return positions
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for id, pos := range first {
		assert.Equal(t, pos, second[id], "node %s moved between identical requests", id)
	}
}

func TestLayoutRejectsOversizedIterationCount(t *testing.T) {
	server, _ := newTestServer(t)

	payload := snapshotPayload()
	payload["canvas"] = map[string]float64{"width": 800, "height": 600}
	payload["iterations"] = queries.MaxLayoutIterations + 1

	resp, _ := postJSON(t, server, "/api/v1/graph/layout", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQueryBusDispatch(t *testing.T) {
	_, container := newTestServer(t)

	result, err := container.QueryBus.Ask(context.Background(), queries.AssembleGraphQuery{})
	require.NoError(t, err)

	assembled, ok := result.(*queries.AssembleGraphResult)
	require.True(t, ok)
	assert.Zero(t, assembled.Stats.NodeCount)
}
