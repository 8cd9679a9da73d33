package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("message/send", map[string]string{"x": "y"})
	require.NoError(t, err)

	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, "message/send", req.Method)
	assert.NotEmpty(t, req.ID)
	assert.JSONEq(t, `{"x":"y"}`, string(req.Params))

	again, err := NewRequest("message/send", nil)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, again.ID)
	assert.Nil(t, again.Params)
}

func TestRequestWireShape(t *testing.T) {
	req, err := NewRequest("tasks/get", map[string]string{"id": "task-1"})
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2.0", decoded["jsonrpc"])
	assert.Equal(t, "tasks/get", decoded["method"])
	assert.NotEmpty(t, decoded["id"])
}

func TestUnmarshalRequestParams(t *testing.T) {
	raw := []byte(`{"jsonrpc":"2.0","id":"req-1","method":"tasks/cancel","params":{"id":"task-2"}}`)

	var req Request
	require.NoError(t, json.Unmarshal(raw, &req))

	assert.Equal(t, "req-1", req.ID)
	assert.Equal(t, "tasks/cancel", req.Method)

	var params struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(req.Params, &params))
	assert.Equal(t, "task-2", params.ID)
}
