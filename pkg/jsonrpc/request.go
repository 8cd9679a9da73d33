package jsonrpc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Request is a JSON-RPC 2.0 request. Params stays raw so method handlers can
// unmarshal into their own parameter types.
type Request struct {
	Message
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds a request for the given method with marshalled params.
// Every request gets a fresh id; a request without one would be a
// notification, which the remote side never answers.
func NewRequest(method string, params any) (Request, error) {
	req := Request{
		Message: Message{
			MessageIdentifier: MessageIdentifier{ID: uuid.NewString()},
			JSONRPC:           "2.0",
		},
		Method: method,
	}

	if params != nil {
		buf, err := json.Marshal(params)

		if err != nil {
			return Request{}, err
		}

		req.Params = buf
	}

	return req, nil
}
