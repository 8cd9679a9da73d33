package jsonrpc

import "encoding/json"

// Response is a JSON-RPC 2.0 response. Result stays raw on the wire so
// callers can decode it into the type the method promises.
type Response struct {
	Message
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}
