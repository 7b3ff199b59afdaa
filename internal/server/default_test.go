package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *DefaultServer {
	return &DefaultServer{
		Parser: &parser.JSONParser{HitWindow: game.DefaultHitWindow, BeatDivisions: game.DefaultBeatDivisions},
		Solver: &solver.DefaultSolver{},
	}
}

func request(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	newServer().Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSolve(t *testing.T) {
	body, err := ioutil.ReadFile("../testdata/example.json")
	require.NoError(t, err)

	w := request(t, http.MethodPost, "/api/solve", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 90, resp.Score)
	require.Len(t, resp.Activations, 1)
	assert.Equal(t, 1, resp.Activations[0].StartIndex)
	assert.Equal(t, 4, resp.Activations[0].EndIndex)
	assert.Empty(t, resp.Candidates)

	w = request(t, http.MethodPost, "/api/solve?all=true", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Candidates)
}

func TestSolveRejects(t *testing.T) {
	bodies := map[string]string{
		"not json":   `{"events": [`,
		"no bpm":     `{"events": [{"time": 1, "score": 1}]}`,
		"no time":    `{"bpm": 120, "events": [{"score": 1}]}`,
		"negative":   `{"bpm": 120, "events": [{"time": 1, "score": -1}]}`,
		"with chart": `{"chart": "/etc/passwd", "events": []}`,
	}
	for name, body := range bodies {
		w := request(t, http.MethodPost, "/api/solve", body)
		if w.Code != http.StatusBadRequest {
			t.Log("Body    ", name)
			t.Log("Status  ", w.Code)
			t.Log("Response", w.Body.String())
			t.Fail()
		}
	}
}

func TestPreflight(t *testing.T) {
	w := request(t, http.MethodOptions, "/api/solve", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandleEmpty(t *testing.T) {
	status, payload := newServer().Handle([]byte(`{"bpm": 120, "events": []}`), false)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response{Activations: []game.Activation{}}, payload)
}
