package tools

import (
	"context"

	"github.com/petasbytes/imagegen-mcp/internal/imagegen"
	"github.com/petasbytes/imagegen-mcp/internal/mcp"
)

// DallE3Input is the generate_image_dalle3 argument shape. The model always
// produces exactly one image, so there is no n parameter; any supplied n is
// dropped with the rest of the unknown fields and the upstream call pins
// count-of-images to 1.
type DallE3Input struct {
	Prompt  string `json:"prompt" jsonschema_description:"Text description of the desired image (up to 4000 characters)."`
	Output  string `json:"output" jsonschema_description:"Destination file path for the generated image; parent directories are created as needed."`
	Size    string `json:"size,omitempty" jsonschema:"enum=1024x1024,enum=1792x1024,enum=1024x1792,default=1024x1024" jsonschema_description:"Image dimensions."`
	Quality string `json:"quality,omitempty" jsonschema:"enum=standard,enum=hd,default=standard" jsonschema_description:"Rendering quality."`
	Style   string `json:"style,omitempty" jsonschema:"enum=vivid,enum=natural,default=vivid" jsonschema_description:"Visual style of the generated image."`
	User    string `json:"user,omitempty" jsonschema_description:"Optional end-user identifier passed through to the API."`
}

var DallE3InputSchema = GenerateSchema[DallE3Input]()

// NewGenerateImageDallE3 builds the dall-e-3 tool.
func NewGenerateImageDallE3(a *imagegen.Adapter) ToolDefinition {
	const name = "generate_image_dalle3"
	return ToolDefinition{
		Name:        name,
		Description: "Generate an image with OpenAI DALL-E 3 and save it to a local file. Always produces exactly one image.",
		InputSchema: DallE3InputSchema,
		Handler: func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
			var in DallE3Input
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if err := requireArgs(in.Prompt, in.Output); err != nil {
				return nil, err
			}

			params := imagegen.DallE3Params{
				Size:    in.Size,
				Quality: in.Quality,
				Style:   in.Style,
				User:    in.User,
			}
			return runGenerate(ctx, a, name, in.Prompt, in.Output, params)
		},
	}
}
