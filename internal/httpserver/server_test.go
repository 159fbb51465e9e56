package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordsolver/internal/config"
	"github.com/robalobadob/wordsolver/internal/heuristic"
	"github.com/robalobadob/wordsolver/internal/metrics"
	"github.com/robalobadob/wordsolver/internal/solver"
	"github.com/robalobadob/wordsolver/internal/words"
)

const testAPIKey = "let-me-in"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	return New(Options{
		Vocabulary: func(length int) (*words.Vocabulary, error) {
			if length != 5 {
				return nil, fmt.Errorf("%w (length %d)", words.ErrEmpty, length)
			}
			return words.New(5, []string{"crane", "trace", "react", "cater", "trice"})
		},
		Registry: heuristic.NewRegistry(heuristic.DefaultOptions()),
		Solver:   solver.DefaultConfig(),
		Salt:     "test",
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Auth:     AuthConfig{JWTSecret: "test-secret", APIKeyHash: string(hash), TokenTTL: time.Hour},
	})
}

func do(t *testing.T, s *Server, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndHeuristics(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	rec = do(t, s, http.MethodGet, "/heuristics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeBody[[]heuristicRow](t, rec)
	require.Len(t, rows, 10)
	assert.Equal(t, heuristicRow{Index: 1, Name: "letter_frequency"}, rows[0])

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"secret": "trace", "heuristic": "1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[solveRes](t, rec)
	assert.Equal(t, solver.StatusSolved, res.Status)
	assert.Equal(t, 3, res.Guesses)
	require.Len(t, res.History, 3)
	assert.Equal(t, "cater", res.History[0].Guess)
	assert.Equal(t, "PPPPP", res.History[0].Feedback)
	assert.Equal(t, "trace", res.History[2].Guess)
	assert.Equal(t, "🟩🟩🟩🟩🟩", res.History[2].Emoji)

	rec = do(t, s, http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(), `wordsolver_solver_solves_total{heuristic="letter_frequency",status="solved"} 1`)
}

func TestSolve_NormalizesSecret(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"secret": "TRACE", "heuristic": "entropy"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[solveRes](t, rec)
	assert.Equal(t, "trace", res.Secret)
	require.Equal(t, solver.StatusSolved, res.Status)
	assert.Equal(t, res.Secret, res.History[len(res.History)-1].Guess)
}

func TestSolve_PickedSecret(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"key": "2025-01-01", "heuristic": "entropy"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[solveRes](t, rec)
	assert.Contains(t, []string{"crane", "trace", "react", "cater", "trice"}, res.Secret)
	assert.Equal(t, solver.StatusSolved, res.Status)
}

func TestSolve_Errors(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		body map[string]any
		code int
		err  string
	}{
		{map[string]any{"secret": "trace", "heuristic": "bogus"}, http.StatusBadRequest, "invalid_heuristic"},
		{map[string]any{"secret": "tra"}, http.StatusBadRequest, "invalid_secret"},
		{map[string]any{"secret": "tr4ce"}, http.StatusBadRequest, "invalid_request"},
		{map[string]any{"secret": "traces", "length": 6}, http.StatusBadRequest, "invalid_length"},
		{map[string]any{"secret": "zzzzz"}, http.StatusUnprocessableEntity, "no_candidates"},
	}
	for _, c := range cases {
		rec := do(t, s, http.MethodPost, "/solve", c.body)
		assert.Equal(t, c.code, rec.Code, rec.Body.String())
		assert.Equal(t, c.err, decodeBody[map[string]string](t, rec)["error"])
	}

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggest(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/suggest", map[string]any{
		"history": []map[string]string{{"guess": "cater", "feedback": "🟨🟨🟨🟨🟨"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sug := decodeBody[solver.Suggestion](t, rec)
	assert.Equal(t, "react", sug.Guess)
	assert.Equal(t, 2, sug.Remaining)

	rec = do(t, s, http.MethodPost, "/suggest", map[string]any{
		"history": []map[string]string{
			{"guess": "crane", "feedback": "20000"},
			{"guess": "trice", "feedback": "20000"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/suggest", map[string]any{
		"history": []map[string]string{{"guess": "crane", "feedback": "2000"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_feedback", decodeBody[map[string]string](t, rec)["error"])
}

func TestSessions(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/sessions", map[string]any{"secret": "trace"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[sessionRes](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, solver.StatusGuessing, created.Status)
	assert.Equal(t, 5, created.Remaining)

	want := []string{"cater", "react", "trace"}
	var last sessionRes
	for i, w := range want {
		rec = do(t, s, http.MethodPost, "/sessions/"+created.ID+"/step", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		last = decodeBody[sessionRes](t, rec)
		require.NotNil(t, last.Last)
		assert.Equal(t, w, last.Last.Guess)
		assert.Len(t, last.History, i+1)

		if i == 0 {
			rec = do(t, s, http.MethodGet, "/sessions/"+created.ID, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, 2, decodeBody[sessionRes](t, rec).Remaining)
		}
	}
	assert.Equal(t, solver.StatusSolved, last.Status)

	rec = do(t, s, http.MethodGet, "/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "finished sessions are dropped")
	rec = do(t, s, http.MethodPost, "/sessions/"+created.ID+"/step", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func token(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/auth/token", map[string]string{"apiKey": testAPIKey})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[tokenRes](t, rec).Token
}

func TestAuthToken(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/auth/token", map[string]string{"apiKey": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.NotEmpty(t, token(t, s))

	off := New(Options{})
	rec = do(t, off, http.MethodPost, "/auth/token", map[string]string{"apiKey": testAPIKey})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBatch_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"heuristics": []string{"letter_frequency", "minimax"}}

	rec := do(t, s, http.MethodPost, "/batch", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/batch", body, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/batch", body, "Authorization", "Bearer "+token(t, s))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rep struct {
		ID        string `json:"id"`
		Summaries []struct {
			Heuristic string  `json:"heuristic"`
			Runs      int     `json:"runs"`
			Solved    int     `json:"solved"`
			Mean      float64 `json:"mean"`
		} `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.Len(t, rep.Summaries, 2)
	assert.Equal(t, "minimax", rep.Summaries[1].Heuristic)
	for _, sum := range rep.Summaries {
		assert.Equal(t, 5, sum.Runs)
		assert.Equal(t, 5, sum.Solved)
	}
}

func TestBatch_ExpiredToken(t *testing.T) {
	s := newTestServer(t)
	defer func() { timeNow = time.Now }()

	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok := token(t, s)
	timeNow = time.Now

	rec := do(t, s, http.MethodPost, "/batch", map[string]any{}, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBatch_DefaultSecretWithoutAPIKey(t *testing.T) {
	reg := prometheus.NewRegistry()
	def := config.Default().Server
	s := New(Options{
		Registry: heuristic.NewRegistry(heuristic.DefaultOptions()),
		Solver:   solver.DefaultConfig(),
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Auth:     AuthConfig{JWTSecret: def.JWTSecret, APIKeyHash: def.APIKeyHash, TokenTTL: def.TokenTTL},
	})

	rec := do(t, s, http.MethodPost, "/auth/token", map[string]string{"apiKey": testAPIKey})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	claims := jwt.RegisteredClaims{
		Subject:   "api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(def.JWTSecret))
	require.NoError(t, err)

	rec = do(t, s, http.MethodPost, "/batch", map[string]any{"heuristics": []string{"letter_frequency"}},
		"Authorization", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
