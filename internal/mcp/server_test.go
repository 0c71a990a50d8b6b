package mcp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/petasbytes/imagegen-mcp/internal/mcp"
)

func newTestServer(t *testing.T) *mcp.Server {
	t.Helper()
	s := mcp.NewServer("test-server", "0.0.1", nil)
	err := s.RegisterTool(mcp.Tool{
		Name:        "echo",
		Description: "Echo the text argument back.",
		InputSchema: map[string]any{"type": "object"},
		Handler: func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
			text, _ := args["text"].(string)
			if text == "" {
				return nil, mcp.InvalidParams("missing required parameter: text")
			}
			if text == "explode" {
				return nil, errors.New("unexpected failure")
			}
			return mcp.TextResult(text), nil
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return s
}

func request(id any, method string, params map[string]any) *mcp.Message {
	return &mcp.Message{JSONRPC: "2.0", ID: id, Method: method, Params: params}
}

func TestServer_Initialize(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(1, "initialize", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("resp: %+v", resp)
	}
	if v := gjson.GetBytes(resp.Result, "protocolVersion").String(); v != mcp.ProtocolVersion {
		t.Fatalf("protocolVersion: got %q", v)
	}
	if !gjson.GetBytes(resp.Result, "capabilities.tools").Exists() {
		t.Fatal("tools capability missing")
	}
	if name := gjson.GetBytes(resp.Result, "serverInfo.name").String(); name != "test-server" {
		t.Fatalf("serverInfo.name: got %q", name)
	}
}

func TestServer_Ping(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(2, "ping", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("resp: %+v", resp)
	}
	if string(resp.Result) != "{}" {
		t.Fatalf("result: %s", resp.Result)
	}
}

func TestServer_ToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(3, "tools/list", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("resp: %+v", resp)
	}
	tools := gjson.GetBytes(resp.Result, "tools")
	if len(tools.Array()) != 1 {
		t.Fatalf("tools: %s", resp.Result)
	}
	if name := tools.Get("0.name").String(); name != "echo" {
		t.Fatalf("name: got %q", name)
	}
	if !tools.Get("0.inputSchema").Exists() {
		t.Fatal("inputSchema missing")
	}
}

func TestServer_UnknownMethod(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(4, "resources/list", nil))
	if resp.Error == nil || resp.Error.Code != mcp.CodeMethodNotFound {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestServer_CallTool_Success(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(5, "tools/call", map[string]any{
		"name":      "echo",
		"arguments": map[string]any{"text": "hi"},
	}))
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if text := gjson.GetBytes(resp.Result, "content.0.text").String(); text != "hi" {
		t.Fatalf("text: got %q", text)
	}
}

func TestServer_CallTool_UnknownTool(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(6, "tools/call", map[string]any{"name": "nope"}))
	if resp.Error == nil || resp.Error.Code != mcp.CodeMethodNotFound {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestServer_CallTool_MissingName(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(7, "tools/call", map[string]any{}))
	if resp.Error == nil || resp.Error.Code != mcp.CodeInvalidParams {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestServer_CallTool_HandlerInvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(8, "tools/call", map[string]any{
		"name":      "echo",
		"arguments": map[string]any{},
	}))
	if resp.Error == nil || resp.Error.Code != mcp.CodeInvalidParams {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestServer_CallTool_HandlerInternalError(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(9, "tools/call", map[string]any{
		"name":      "echo",
		"arguments": map[string]any{"text": "explode"},
	}))
	if resp.Error == nil || resp.Error.Code != mcp.CodeInternalError {
		t.Fatalf("resp: %+v", resp)
	}
}

func TestServer_Notification_NoResponse(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), &mcp.Message{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Fatalf("expected nil response, got %+v", resp)
	}
}

func TestServer_RegisterTool_Validation(t *testing.T) {
	s := mcp.NewServer("t", "0", nil)
	noop := func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
		return mcp.TextResult("ok"), nil
	}

	if err := s.RegisterTool(mcp.Tool{Description: "d", InputSchema: 1, Handler: noop}); err == nil {
		t.Fatal("expected error for missing name")
	}
	if err := s.RegisterTool(mcp.Tool{Name: "a", Description: "d", InputSchema: 1, Handler: noop}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.RegisterTool(mcp.Tool{Name: "a", Description: "d", InputSchema: 1, Handler: noop}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestServe_ParseErrorThenRecovers(t *testing.T) {
	s := newTestServer(t)

	in := strings.NewReader(
		"this is not json\n" +
			`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	var out bytes.Buffer

	err := s.Serve(context.Background(), mcp.NewStdioTransport(in, &out))
	if err != nil {
		t.Fatalf("serve: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(lines), out.String())
	}
	if code := gjson.Get(lines[0], "error.code").Int(); code != mcp.CodeParseError {
		t.Fatalf("first response: %s", lines[0])
	}
	if id := gjson.Get(lines[1], "id").Int(); id != 1 {
		t.Fatalf("second response: %s", lines[1])
	}
}

func TestServe_EOFIsCleanExit(t *testing.T) {
	s := newTestServer(t)
	var out bytes.Buffer
	if err := s.Serve(context.Background(), mcp.NewStdioTransport(strings.NewReader(""), &out)); err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestServe_ContextCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, mcp.NewStdioTransport(strings.NewReader(""), &out))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestServe_RejectsWrongJSONRPCVersion(t *testing.T) {
	s := newTestServer(t)
	in := strings.NewReader(`{"jsonrpc":"1.0","id":1,"method":"ping"}` + "\n")
	var out bytes.Buffer
	if err := s.Serve(context.Background(), mcp.NewStdioTransport(in, &out)); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if code := gjson.Get(strings.TrimSpace(out.String()), "error.code").Int(); code != mcp.CodeInvalidRequest {
		t.Fatalf("response: %s", out.String())
	}
}

func TestServe_UnterminatedFinalLine(t *testing.T) {
	s := newTestServer(t)
	in := strings.NewReader(`{"jsonrpc":"2.0","id":9,"method":"ping"}`) // no trailing newline
	var out bytes.Buffer
	if err := s.Serve(context.Background(), mcp.NewStdioTransport(in, &out)); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if id := gjson.Get(strings.TrimSpace(out.String()), "id").Int(); id != 9 {
		t.Fatalf("response: %s", out.String())
	}
}

func TestMarshalledResponse_RoundTrips(t *testing.T) {
	s := newTestServer(t)
	resp := s.HandleMessage(context.Background(), request(10, "tools/list", nil))
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var rt mcp.Message
	if err := json.Unmarshal(b, &rt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rt.JSONRPC != "2.0" {
		t.Fatalf("jsonrpc: %q", rt.JSONRPC)
	}
}
