package mcp

import "encoding/json"

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Message is a JSON-RPC 2.0 request, response, or notification.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  map[string]any  `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object. It implements the error interface so
// tool handlers can return one to select the protocol error code surfaced to
// the client.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// InvalidParams returns an invalid-params protocol error. Tool handlers use
// it for missing or malformed required arguments, which must abort the call
// before any upstream work.
func InvalidParams(msg string) *Error {
	return &Error{Code: CodeInvalidParams, Message: msg}
}

// NewResponse builds a success response for the given request ID. The result
// is marshalled eagerly; a marshal failure is reported as an internal error
// response instead.
func NewResponse(id any, result any) *Message {
	raw, err := json.Marshal(result)
	if err != nil {
		return NewErrorResponse(id, CodeInternalError, "marshal result: "+err.Error(), nil)
	}
	return &Message{JSONRPC: "2.0", ID: id, Result: raw}
}

// NewErrorResponse builds an error response for the given request ID.
func NewErrorResponse(id any, code int, msg string, data any) *Message {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: msg, Data: data},
	}
}

// ContentItem is one element of a tool result's content list. Only text
// content is produced by this server.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// CallToolResult is the tools/call result payload. IsError marks a handled
// tool failure; it is not a protocol-level fault.
type CallToolResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// TextResult wraps a single text payload into a CallToolResult.
func TextResult(text string) *CallToolResult {
	return &CallToolResult{Content: []ContentItem{{Type: "text", Text: text}}}
}

// ErrorResult wraps a failure message into a non-throwing tool result.
func ErrorResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []ContentItem{{Type: "text", Text: text}},
		IsError: true,
	}
}
