package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/petasbytes/imagegen-mcp/internal/imagegen"
	"github.com/petasbytes/imagegen-mcp/internal/mcp"
	"github.com/petasbytes/imagegen-mcp/internal/telemetry"
)

// ToolDefinition pairs a tool's catalog entry with its handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Handler     mcp.ToolHandler
}

// Tool converts the definition into the protocol layer's registration shape.
func (d ToolDefinition) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.InputSchema,
		Handler:     d.Handler,
	}
}

// GenerateSchema derives a JSON Schema for a tool input struct. Fields
// without omitempty become required; unknown properties are rejected by the
// schema (and silently dropped by the decode step either way).
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// decodeArgs copies the untyped argument bag into a typed input struct.
// Unknown fields are dropped; type mismatches are argument errors.
func decodeArgs(args map[string]any, dst any) error {
	b, err := json.Marshal(args)
	if err != nil {
		return mcp.InvalidParams(fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return mcp.InvalidParams(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// requireArgs enforces the two arguments every tool needs before any
// upstream work happens.
func requireArgs(prompt, output string) error {
	if prompt == "" {
		return mcp.InvalidParams("missing required parameter: prompt")
	}
	if output == "" {
		return mcp.InvalidParams("missing required parameter: output")
	}
	return nil
}

// runGenerate executes the shared handler tail: validate the parameter
// record, call the adapter, and render the outcome. Adapter failures become
// isError results so a generation failure never tears down the session.
func runGenerate(ctx context.Context, a *imagegen.Adapter, toolName, prompt, output string, params imagegen.Params) (*mcp.CallToolResult, error) {
	if err := params.Validate(); err != nil {
		return nil, mcp.InvalidParams(err.Error())
	}

	telemetry.Emit("tool_call", map[string]any{
		"tool":   toolName,
		"model":  string(params.Variant()),
		"output": output,
	})

	res, err := a.GenerateImage(ctx, prompt, output, params)
	if err != nil {
		telemetry.Emit("generation_failed", map[string]any{
			"tool":  toolName,
			"model": string(params.Variant()),
			"error": err.Error(),
		})
		return mcp.ErrorResult(fmt.Sprintf("image generation failed: %v", err)), nil
	}

	return successResult(params.Variant(), res)
}

// outcome is the JSON payload embedded as text in a successful tool result.
type outcome struct {
	Success    bool            `json:"success"`
	Model      string          `json:"model"`
	SavedPaths []string        `json:"saved_paths"`
	Response   json.RawMessage `json:"response,omitempty"`
}

func successResult(v imagegen.Variant, res *imagegen.Result) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(res.Raw)
	if err != nil {
		raw = nil
	}

	body, err := json.Marshal(outcome{
		Success:    true,
		Model:      string(v),
		SavedPaths: res.SavedPaths,
		Response:   redactImageData(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal outcome: %w", err)
	}
	return mcp.TextResult(string(body)), nil
}

// redactImageData strips inline base64 payloads from the raw upstream
// response: the bytes are already on disk and would otherwise dominate the
// result.
func redactImageData(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	n := gjson.GetBytes(raw, "data.#").Int()
	for i := int64(0); i < n; i++ {
		stripped, err := sjson.DeleteBytes(raw, fmt.Sprintf("data.%d.b64_json", i))
		if err != nil {
			continue
		}
		raw = stripped
	}
	return raw
}
