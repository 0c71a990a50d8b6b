package tools

import (
	"context"

	"github.com/petasbytes/imagegen-mcp/internal/imagegen"
	"github.com/petasbytes/imagegen-mcp/internal/mcp"
)

// DallE2Input is the generate_image_dalle2 argument shape.
type DallE2Input struct {
	Prompt string `json:"prompt" jsonschema_description:"Text description of the desired image (up to 1000 characters)."`
	Output string `json:"output" jsonschema_description:"Destination file path for the generated image; parent directories are created as needed."`
	N      int    `json:"n,omitempty" jsonschema:"minimum=1,maximum=10,default=1" jsonschema_description:"Number of images to generate (1-10)."`
	Size   string `json:"size,omitempty" jsonschema:"enum=256x256,enum=512x512,enum=1024x1024,default=1024x1024" jsonschema_description:"Image dimensions."`
	User   string `json:"user,omitempty" jsonschema_description:"Optional end-user identifier passed through to the API."`
}

var DallE2InputSchema = GenerateSchema[DallE2Input]()

// NewGenerateImageDallE2 builds the dall-e-2 tool.
func NewGenerateImageDallE2(a *imagegen.Adapter) ToolDefinition {
	const name = "generate_image_dalle2"
	return ToolDefinition{
		Name:        name,
		Description: "Generate images with OpenAI DALL-E 2 and save them to local files.",
		InputSchema: DallE2InputSchema,
		Handler: func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
			var in DallE2Input
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if err := requireArgs(in.Prompt, in.Output); err != nil {
				return nil, err
			}

			params := imagegen.DallE2Params{
				N:    in.N,
				Size: in.Size,
				User: in.User,
			}
			return runGenerate(ctx, a, name, in.Prompt, in.Output, params)
		},
	}
}
