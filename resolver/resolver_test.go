package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mengeric/fabric-client-go/client"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	wsID   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	itemID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func newCatalogServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/workspaces", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]string{
				{"id": wsID, "displayName": "Sales"},
				{"id": "cccccccc-cccc-cccc-cccc-cccccccccccc", "displayName": "Ops"},
			},
		})
	})
	mux.HandleFunc("/v1/workspaces/"+wsID, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": wsID, "displayName": "Sales"})
	})
	mux.HandleFunc("/v1/workspaces/"+wsID+"/items", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]string{
				{"id": itemID, "displayName": "Daily Load", "type": "DataPipeline"},
			},
		})
	})
	mux.HandleFunc("/v1/workspaces/"+wsID+"/items/"+itemID, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": itemID, "displayName": "Daily Load", "type": "DataPipeline",
		})
	})
	return httptest.NewServer(mux)
}

func TestHTTPResolver_Workspace(t *testing.T) {
	Convey("workspace by ID, by name, by default, and not found", t, func() {
		ts := newCatalogServer()
		defer ts.Close()
		api := client.NewHTTP(client.Options{BaseURL: ts.URL})

		r := NewHTTP(api, "Sales")

		name, id, err := r.Workspace(context.Background(), wsID)
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "Sales")
		So(id, ShouldEqual, wsID)

		name, id, err = r.Workspace(context.Background(), "Ops")
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "Ops")
		So(id, ShouldEqual, "cccccccc-cccc-cccc-cccc-cccccccccccc")

		// 留空回退到默认工作区
		name, _, err = r.Workspace(context.Background(), "")
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "Sales")

		_, _, err = r.Workspace(context.Background(), "Nope")
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})

	Convey("empty workspace without a default should be not found", t, func() {
		r := NewHTTP(nil, "")
		_, _, err := r.Workspace(context.Background(), "")
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})
}

func TestHTTPResolver_Item(t *testing.T) {
	Convey("item by name, by ID, type lookup, and not found", t, func() {
		ts := newCatalogServer()
		defer ts.Close()
		api := client.NewHTTP(client.Options{BaseURL: ts.URL})
		r := NewHTTP(api, "")

		name, id, err := r.Item(context.Background(), "Daily Load", "DataPipeline", wsID)
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "Daily Load")
		So(id, ShouldEqual, itemID)

		name, _, err = r.Item(context.Background(), itemID, "", wsID)
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "Daily Load")

		typ, err := r.ItemType(context.Background(), itemID, wsID)
		So(err, ShouldBeNil)
		So(typ, ShouldEqual, "DataPipeline")

		got, err := r.ItemID(context.Background(), "Daily Load", "DataPipeline", wsID)
		So(err, ShouldBeNil)
		So(got, ShouldEqual, itemID)

		_, _, err = r.Item(context.Background(), "Missing", "DataPipeline", wsID)
		So(errors.Is(err, ErrNotFound), ShouldBeTrue)
	})
}
