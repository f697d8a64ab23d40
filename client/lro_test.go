package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPAPI_DoLRO(t *testing.T) {
	Convey("DoLRO should return immediately on synchronous 200", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/fast", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"done": "yes"})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api := NewHTTP(Options{BaseURL: ts.URL, PollEvery: 10 * time.Millisecond})
		resp, err := api.DoLRO(context.Background(), Request{Method: http.MethodPost, Path: "v1/fast"})
		So(err, ShouldBeNil)
		So(resp.Status, ShouldEqual, http.StatusOK)
	})

	Convey("DoLRO should poll the operation and fetch the result", t, func() {
		var polls int32
		mux := http.NewServeMux()
		var base string
		mux.HandleFunc("/v1/slow", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", base+"/v1/operations/op-1")
			w.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/v1/operations/op-1", func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&polls, 1) < 2 {
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "Running"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "Succeeded"})
		})
		mux.HandleFunc("/v1/operations/op-1/result", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"payload": "final"})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()
		base = ts.URL

		api := NewHTTP(Options{BaseURL: ts.URL, PollEvery: 10 * time.Millisecond})
		resp, err := api.DoLRO(context.Background(), Request{Method: http.MethodPost, Path: "v1/slow"})
		So(err, ShouldBeNil)
		var out struct {
			Payload string `json:"payload"`
		}
		So(resp.JSON(&out), ShouldBeNil)
		So(out.Payload, ShouldEqual, "final")
		So(atomic.LoadInt32(&polls), ShouldBeGreaterThanOrEqualTo, 2)
	})

	Convey("DoLRO should surface the operation error on failure", t, func() {
		mux := http.NewServeMux()
		var base string
		mux.HandleFunc("/v1/bad", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", base+"/v1/operations/op-2")
			w.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/v1/operations/op-2", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "Failed",
				"error":  map[string]string{"errorCode": "BadDefinition", "message": "parts invalid"},
			})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()
		base = ts.URL

		api := NewHTTP(Options{BaseURL: ts.URL, PollEvery: 10 * time.Millisecond})
		_, err := api.DoLRO(context.Background(), Request{Method: http.MethodPost, Path: "v1/bad"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "parts invalid")
		So(err.Error(), ShouldContainSubstring, "BadDefinition")
	})

	Convey("DoLRO should stop when the context is cancelled", t, func() {
		mux := http.NewServeMux()
		var base string
		mux.HandleFunc("/v1/hang", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", base+"/v1/operations/op-3")
			w.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/v1/operations/op-3", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "Running"})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()
		base = ts.URL

		api := NewHTTP(Options{BaseURL: ts.URL, PollEvery: 10 * time.Millisecond})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := api.DoLRO(ctx, Request{Method: http.MethodPost, Path: "v1/hang"})
		So(err, ShouldNotBeNil)
	})
}
