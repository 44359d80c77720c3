package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/session"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/usecase"
)

const testSeed uint64 = 2024

const emptyBoard = "" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬜⬜⬜⬜⬜\n"

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	games := usecase.NewGameManager(logger, session.New(testSeed), nil)

	return NewRouter(logger, games)
}

func do(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestPing(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodGet, "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestBoardHandler_GetBoard(t *testing.T) {
	// When: the board of a fresh game is requested
	rec := do(t, newTestRouter(), http.MethodGet, "/12/board")

	// Then: the empty board is rendered as plain text
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, emptyBoard, rec.Body.String())
}

func TestBoardHandler_Place(t *testing.T) {
	t.Run("Vertical win", func(t *testing.T) {
		// Given: a fresh game
		router := newTestRouter()

		// When: cookie is placed four times into column 1
		var rec *httptest.ResponseRecorder
		for i := 0; i < 4; i++ {
			rec = do(t, router, http.MethodPost, "/12/place/cookie/1")
			require.Equal(t, http.StatusOK, rec.Code)
		}

		// Then: cookie wins and the board endpoint agrees
		assert.True(t, strings.HasSuffix(rec.Body.String(), "🍪 wins!\n"))
		assert.Equal(t, rec.Body.String(), do(t, router, http.MethodGet, "/12/board").Body.String())
	})

	t.Run("Rejected move returns the board with 503", func(t *testing.T) {
		// Given: column 2 filled up
		router := newTestRouter()
		for _, team := range []string{"cookie", "milk", "cookie", "milk"} {
			require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/12/place/"+team+"/2").Code)
		}
		current := do(t, router, http.MethodGet, "/12/board").Body.String()

		// When: another token is dropped into column 2
		rec := do(t, router, http.MethodPost, "/12/place/milk/2")

		// Then: the current board comes back with service unavailable
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, current, rec.Body.String())
	})

	t.Run("Bad requests have no body", func(t *testing.T) {
		router := newTestRouter()

		for _, path := range []string{
			"/12/place/coffee/1",
			"/12/place/cookie/0",
			"/12/place/cookie/5",
			"/12/place/milk/abc",
		} {
			// When: the move is malformed
			rec := do(t, router, http.MethodPost, path)

			// Then: 400 without a board
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Empty(t, rec.Body.String(), path)
		}

		// Then: the board was never touched
		assert.Equal(t, emptyBoard, do(t, router, http.MethodGet, "/12/board").Body.String())
	})

	t.Run("Wrong method", func(t *testing.T) {
		rec := do(t, newTestRouter(), http.MethodGet, "/12/place/cookie/1")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestBoardHandler_ResetAndRandomBoard(t *testing.T) {
	t.Run("Random board is terminal", func(t *testing.T) {
		rec := do(t, newTestRouter(), http.MethodGet, "/12/random-board")

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasSuffix(body, " wins!\n") || strings.HasSuffix(body, "No winner.\n"))
		assert.NotContains(t, body, "⬛")
	})

	t.Run("Reset makes random boards reproducible", func(t *testing.T) {
		// Given: two independent servers
		first := newTestRouter()
		second := newTestRouter()

		// When: both run reset, random, random
		var firstBodies, secondBodies []string
		for _, router := range []http.Handler{first, second} {
			require.Equal(t, emptyBoard, do(t, router, http.MethodPost, "/12/reset").Body.String())
		}
		for i := 0; i < 2; i++ {
			firstBodies = append(firstBodies, do(t, first, http.MethodGet, "/12/random-board").Body.String())
			secondBodies = append(secondBodies, do(t, second, http.MethodGet, "/12/random-board").Body.String())
		}

		// Then: the renderings are byte-identical
		assert.Equal(t, firstBodies, secondBodies)

		// Then: resetting one server replays its sequence
		do(t, first, http.MethodPost, "/12/reset")
		assert.Equal(t, firstBodies[0], do(t, first, http.MethodGet, "/12/random-board").Body.String())
	})

	t.Run("Reset clears a finished game", func(t *testing.T) {
		router := newTestRouter()
		do(t, router, http.MethodGet, "/12/random-board")

		rec := do(t, router, http.MethodPost, "/12/reset")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, emptyBoard, rec.Body.String())
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	// Given: a request carrying its own id
	req := httptest.NewRequest(http.MethodGet, "/12/board", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()

	// When: it is served
	newTestRouter().ServeHTTP(rec, req)

	// Then: the id is echoed back
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}
