package tools

import "github.com/petasbytes/imagegen-mcp/internal/imagegen"

// Registry returns all tool definitions wired to the given adapter.
func Registry(a *imagegen.Adapter) []ToolDefinition {
	return []ToolDefinition{
		NewGenerateImageGPT(a),
		NewGenerateImageGPTMini(a),
		NewGenerateImageDallE3(a),
		NewGenerateImageDallE2(a),
	}
}
