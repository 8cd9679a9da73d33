package jsonrpc

// MessageIdentifier carries the request identifier shared by every JSON-RPC
// message. Responses must echo the ID of the request they relate to;
// notifications omit it.
type MessageIdentifier struct {
	ID any `json:"id,omitempty"`
}

// Message is the base of all JSON-RPC messages. JSONRPC must be "2.0".
type Message struct {
	MessageIdentifier
	JSONRPC string `json:"jsonrpc,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
