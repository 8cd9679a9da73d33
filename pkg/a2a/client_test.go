package a2a

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/theailifestyle/mas-a2a/pkg/jsonrpc"
)

// rpcStub serves canned JSON-RPC results and records the last request so the
// test can assert on it after the call returns.
func rpcStub(handler func(req jsonrpc.Request) any) (*httptest.Server, *jsonrpc.Request) {
	received := &jsonrpc.Request{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(received)

		result, _ := json.Marshal(handler(*received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jsonrpc.Response{
			Message: jsonrpc.Message{
				MessageIdentifier: jsonrpc.MessageIdentifier{ID: received.ID},
				JSONRPC:           "2.0",
			},
			Result: result,
		})
	}))

	return srv, received
}

func TestClientSendMessage(t *testing.T) {
	Convey("Given an agent that answers message/send with a submitted task", t, func() {
		srv, received := rpcStub(func(req jsonrpc.Request) any {
			return Task{ID: "task-1", Status: TaskStatus{State: TaskStateSubmitted}}
		})
		defer srv.Close()

		client := NewClient(srv.URL)

		Convey("SendMessage decodes the task variant of the result union", func() {
			resp, err := client.SendMessage(MessageSendParams{
				Message: *NewTextMessage("user", "hello"),
				AgentID: "echo",
			})

			So(err, ShouldBeNil)
			So(resp.Error, ShouldBeNil)
			So(resp.Result.Task, ShouldNotBeNil)
			So(resp.Result.Task.ID, ShouldEqual, "task-1")
			So(resp.Result.Message, ShouldBeNil)

			Convey("And the request carried the right method, id and params", func() {
				So(received.Method, ShouldEqual, "message/send")
				So(received.ID, ShouldNotBeEmpty)

				var params MessageSendParams
				So(json.Unmarshal(received.Params, &params), ShouldBeNil)
				So(params.Message.Role, ShouldEqual, "user")
				So(params.Message.MessageID, ShouldNotBeEmpty)
			})
		})
	})
}

func TestClientGetTask(t *testing.T) {
	Convey("Given an agent that answers tasks/get with a completed task", t, func() {
		srv, received := rpcStub(func(req jsonrpc.Request) any {
			var params TaskQueryParams
			_ = json.Unmarshal(req.Params, &params)

			task := Task{ID: params.ID, Status: TaskStatus{State: TaskStateCompleted}}
			task.Artifacts = []Artifact{{Parts: []Part{NewTextPart("done")}}}
			return task
		})
		defer srv.Close()

		client := NewClient(srv.URL)

		Convey("GetTask returns the task with its artifacts", func() {
			resp, err := client.GetTask(TaskQueryParams{TaskIDParams: TaskIDParams{ID: "task-9"}})

			So(err, ShouldBeNil)
			So(resp.Error, ShouldBeNil)
			So(resp.Result.ID, ShouldEqual, "task-9")
			So(received.Method, ShouldEqual, "tasks/get")
			So(received.ID, ShouldNotBeEmpty)

			text, ok := resp.Result.FirstText()
			So(ok, ShouldBeTrue)
			So(text, ShouldEqual, "done")
		})
	})
}

func TestClientErrorResponse(t *testing.T) {
	Convey("Given an agent that answers with a JSON-RPC error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(jsonrpc.Response{
				Message: jsonrpc.Message{JSONRPC: "2.0"},
				Error:   &jsonrpc.Error{Code: -32601, Message: "Method not found"},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		Convey("The error is surfaced on the response, not as a transport error", func() {
			resp, err := client.SendMessage(MessageSendParams{Message: *NewTextMessage("user", "x")})

			So(err, ShouldBeNil)
			So(resp.Error, ShouldNotBeNil)
			So(resp.Error.Message, ShouldEqual, "Method not found")
			So(resp.Result, ShouldBeNil)
		})
	})
}
