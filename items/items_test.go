package items

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mengeric/fabric-client-go/client"
	"github.com/mengeric/fabric-client-go/mocks"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/mock/gomock"
)

const (
	wsID   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	itemID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func newResolver(ctrl *gomock.Controller) *mocks.MockResolver {
	res := mocks.NewMockResolver(ctrl)
	res.EXPECT().Workspace(gomock.Any(), "Sales").Return("Sales", wsID, nil).AnyTimes()
	res.EXPECT().Item(gomock.Any(), "Daily Load", "DataPipeline", wsID).Return("Daily Load", itemID, nil).AnyTimes()
	return res
}

func TestCreate(t *testing.T) {
	Convey("create posts displayName and type, omitting empty fields", t, func(cv C) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var created map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/workspaces/"+wsID+"/items", func(w http.ResponseWriter, r *http.Request) {
			cv.So(r.Method, ShouldEqual, http.MethodPost)
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &created)
			w.WriteHeader(http.StatusCreated)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		c := New(client.NewHTTP(client.Options{BaseURL: ts.URL}), newResolver(ctrl))
		err := c.Create(context.Background(), CreateRequest{
			Name: "Daily Load", Type: "DataPipeline", Workspace: "Sales",
		})
		So(err, ShouldBeNil)
		So(created["displayName"], ShouldEqual, "Daily Load")
		So(created["type"], ShouldEqual, "DataPipeline")
		_, hasDesc := created["description"]
		So(hasDesc, ShouldBeFalse)
		_, hasDef := created["definition"]
		So(hasDef, ShouldBeFalse)
	})

	Convey("a long-running create is awaited to completion", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mux := http.NewServeMux()
		var base string
		polled := false
		mux.HandleFunc("/v1/workspaces/"+wsID+"/items", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", base+"/v1/operations/op-1")
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/v1/operations/op-1", func(w http.ResponseWriter, r *http.Request) {
			polled = true
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "Succeeded"})
		})
		mux.HandleFunc("/v1/operations/op-1/result", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"id": itemID})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()
		base = ts.URL

		c := New(client.NewHTTP(client.Options{BaseURL: ts.URL, PollEvery: time.Millisecond}), newResolver(ctrl))
		err := c.Create(context.Background(), CreateRequest{
			Name: "Daily Load", Type: "DataPipeline", Workspace: "Sales",
		})
		So(err, ShouldBeNil)
		So(polled, ShouldBeTrue)
	})
}

func TestList(t *testing.T) {
	Convey("list filters by type and drains pages", t, func(cv C) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mux := http.NewServeMux()
		mux.HandleFunc("/v1/workspaces/"+wsID+"/items", func(w http.ResponseWriter, r *http.Request) {
			cv.So(r.URL.Query().Get("type"), ShouldEqual, "Notebook")
			if r.URL.Query().Get("continuationToken") == "" {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"value":             []map[string]string{{"id": "n-1", "displayName": "A", "type": "Notebook"}},
					"continuationToken": "t1",
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"value": []map[string]string{{"id": "n-2", "displayName": "B", "type": "Notebook"}},
			})
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		c := New(client.NewHTTP(client.Options{BaseURL: ts.URL}), newResolver(ctrl))
		got, err := c.List(context.Background(), "Sales", "Notebook")
		So(err, ShouldBeNil)
		So(len(got), ShouldEqual, 2)
		So(got[0].DisplayName, ShouldEqual, "A")
		So(got[1].ID, ShouldEqual, "n-2")
	})
}

func TestDelete(t *testing.T) {
	Convey("delete resolves the item and issues DELETE", t, func(cv C) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hit := false
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/workspaces/"+wsID+"/items/"+itemID, func(w http.ResponseWriter, r *http.Request) {
			hit = true
			cv.So(r.Method, ShouldEqual, http.MethodDelete)
			w.WriteHeader(http.StatusOK)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		c := New(client.NewHTTP(client.Options{BaseURL: ts.URL}), newResolver(ctrl))
		So(c.Delete(context.Background(), "Daily Load", "DataPipeline", "Sales"), ShouldBeNil)
		So(hit, ShouldBeTrue)
	})
}
