package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) report {
	t.Helper()
	var body report
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := New()
	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if body := decode(t, rec); body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	pass := func(_ context.Context) error { return nil }

	t.Run("all checkers pass", func(t *testing.T) {
		t.Parallel()
		h := New(
			PingChecker("database", pass),
			Checker{Name: "discord", Check: pass},
		)

		rec := httptest.NewRecorder()
		h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := decode(t, rec)
		if body.Status != "ok" {
			t.Errorf("status = %q, want %q", body.Status, "ok")
		}
		if body.Checks["database"] != "ok" || body.Checks["discord"] != "ok" {
			t.Errorf("checks = %v, want all ok", body.Checks)
		}
	})

	t.Run("one checker fails", func(t *testing.T) {
		t.Parallel()
		h := New(
			PingChecker("database", func(_ context.Context) error {
				return errors.New("connection refused")
			}),
			Checker{Name: "discord", Check: pass},
		)

		rec := httptest.NewRecorder()
		h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		body := decode(t, rec)
		if body.Status != "fail" {
			t.Errorf("status = %q, want %q", body.Status, "fail")
		}
		if body.Checks["database"] != "fail: connection refused" {
			t.Errorf("database check = %q", body.Checks["database"])
		}
		if body.Checks["discord"] != "ok" {
			t.Errorf("discord check = %q, want ok", body.Checks["discord"])
		}
	})

	t.Run("no checkers is ready", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		New().Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("respects request cancellation", func(t *testing.T) {
		t.Parallel()
		h := New(Checker{Name: "slow", Check: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec := httptest.NewRecorder()
		h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil).WithContext(ctx))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	New(PingChecker("database", func(_ context.Context) error { return nil })).Register(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
