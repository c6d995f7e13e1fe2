// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.hybscloud.com/hyper/connect"
)

var quiet = slog.New(slog.DiscardHandler)

func serve(app *connect.App, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec.Result()
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestAppOrder(t *testing.T) {
	var order []string
	step := func(name string) connect.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request, next func(error)) {
			order = append(order, name)
			next(nil)
		}
	}
	end := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		io.WriteString(w, strings.Join(order, ","))
	})
	app := connect.New(connect.WithLogger(quiet)).Use(step("a"), step("b")).Use(end)

	res := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := body(t, res); got != "a,b" {
		t.Fatalf("body got %q, want %q", got, "a,b")
	}
}

func TestAppNotFound(t *testing.T) {
	app := connect.New(connect.WithLogger(quiet))
	res := serve(app, httptest.NewRequest(http.MethodDelete, "/nope", nil))
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status got %d, want 404", res.StatusCode)
	}
	if got := body(t, res); got != "Cannot DELETE /nope" {
		t.Fatalf("body got %q", got)
	}
}

func TestAppFallthroughAfterHeader(t *testing.T) {
	// A stage that already answered is not overwritten by the 404.
	wrote := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		w.WriteHeader(http.StatusNoContent)
		next(nil)
	})
	res := serve(connect.New(connect.WithLogger(quiet)).Use(wrote), httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("status got %d, want 204", res.StatusCode)
	}
}

func TestAppDefaultErrorHandler(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	fail := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		next(errors.New("boom"))
	})
	skipped := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		t.Error("stage after a failure ran")
	})
	app := connect.New(connect.WithLogger(logger)).Use(fail, skipped)

	res := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status got %d, want 500", res.StatusCode)
	}
	if got := body(t, res); got != "Internal Server Error" {
		t.Fatalf("body got %q", got)
	}
	if !strings.Contains(logs.String(), "err=boom") {
		t.Fatalf("error not logged:\n%s", logs.String())
	}
}

func TestAppStatusError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	fail := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		next(connect.Errorf(http.StatusTeapot, "short and stout"))
	})
	res := serve(connect.New(connect.WithLogger(logger)).Use(fail), httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusTeapot {
		t.Fatalf("status got %d, want 418", res.StatusCode)
	}
	if logs.Len() != 0 {
		t.Fatalf("client error logged:\n%s", logs.String())
	}
}

func TestAppCustomErrorHandler(t *testing.T) {
	var got error
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusBadGateway)
	}
	boom := errors.New("boom")
	fail := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) { next(boom) })

	res := serve(connect.New(connect.WithErrorHandler(onError)).Use(fail), httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusBadGateway || got != boom {
		t.Fatalf("got %d %v", res.StatusCode, got)
	}
}

func TestAppRecoversPanic(t *testing.T) {
	var got error
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusInternalServerError)
	}
	bad := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		panic("oh no")
	})
	res := serve(connect.New(connect.WithErrorHandler(onError)).Use(bad), httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status got %d, want 500", res.StatusCode)
	}
	if got == nil || !strings.Contains(got.Error(), "oh no") {
		t.Fatalf("error got %v", got)
	}
}

func TestAppAbortHandlerPropagates(t *testing.T) {
	abort := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		panic(http.ErrAbortHandler)
	})
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Fatalf("recovered %v, want ErrAbortHandler", r)
		}
	}()
	serve(connect.New(connect.WithLogger(quiet)).Use(abort), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAppNextTwice(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	runs := 0
	twice := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		next(nil)
		next(nil)
	})
	count := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		runs++
		w.WriteHeader(http.StatusOK)
	})
	serve(connect.New(connect.WithLogger(logger)).Use(twice, count), httptest.NewRequest(http.MethodGet, "/", nil))
	if runs != 1 {
		t.Fatalf("next stage ran %d times, want 1", runs)
	}
	if !strings.Contains(logs.String(), "next called more than once") {
		t.Fatalf("double next not logged:\n%s", logs.String())
	}
}

func TestAppCommitsPendingStatus(t *testing.T) {
	pending := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) {
		res, created := connect.AsResponse(w)
		if created {
			t.Error("App did not pass a *Response")
		}
		res.SetStatus(http.StatusAccepted)
	})
	res := serve(connect.New(connect.WithLogger(quiet)).Use(pending), httptest.NewRequest(http.MethodGet, "/", nil))
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("status got %d, want 202", res.StatusCode)
	}
}
