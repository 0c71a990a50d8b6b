package tools

import (
	"context"

	"github.com/petasbytes/imagegen-mcp/internal/imagegen"
	"github.com/petasbytes/imagegen-mcp/internal/mcp"
)

// GPTImageInput is the argument shape shared by generate_image_gpt and
// generate_image_gpt_mini.
type GPTImageInput struct {
	Prompt            string `json:"prompt" jsonschema_description:"Text description of the desired image (up to 32000 characters)."`
	Output            string `json:"output" jsonschema_description:"Destination file path for the generated image; parent directories are created as needed."`
	N                 int    `json:"n,omitempty" jsonschema:"minimum=1,maximum=10,default=1" jsonschema_description:"Number of images to generate (1-10)."`
	Size              string `json:"size,omitempty" jsonschema:"enum=1024x1024,enum=1536x1024,enum=1024x1536,enum=auto,default=auto" jsonschema_description:"Image dimensions."`
	Quality           string `json:"quality,omitempty" jsonschema:"enum=low,enum=medium,enum=high,enum=auto,default=auto" jsonschema_description:"Rendering quality."`
	Background        string `json:"background,omitempty" jsonschema:"enum=transparent,enum=opaque,enum=auto,default=auto" jsonschema_description:"Background transparency; transparent requires png or webp output."`
	Moderation        string `json:"moderation,omitempty" jsonschema:"enum=low,enum=auto,default=auto" jsonschema_description:"Content moderation strictness."`
	OutputCompression *int   `json:"output_compression,omitempty" jsonschema:"minimum=0,maximum=100,default=100" jsonschema_description:"Compression level for jpeg and webp output (0-100)."`
	OutputFormat      string `json:"output_format,omitempty" jsonschema:"enum=png,enum=jpeg,enum=webp,default=png" jsonschema_description:"Container format of the generated image."`
	User              string `json:"user,omitempty" jsonschema_description:"Optional end-user identifier passed through to the API."`
}

var GPTImageInputSchema = GenerateSchema[GPTImageInput]()

// NewGenerateImageGPT builds the gpt-image-1 tool.
func NewGenerateImageGPT(a *imagegen.Adapter) ToolDefinition {
	return newGPTImageTool(a, "generate_image_gpt", imagegen.VariantGPTImage,
		"Generate images with OpenAI gpt-image-1 and save them to local files.")
}

// NewGenerateImageGPTMini builds the gpt-image-1-mini tool, a cheaper and
// faster sibling with the same parameter surface.
func NewGenerateImageGPTMini(a *imagegen.Adapter) ToolDefinition {
	return newGPTImageTool(a, "generate_image_gpt_mini", imagegen.VariantGPTImageMini,
		"Generate images with OpenAI gpt-image-1-mini and save them to local files.")
}

func newGPTImageTool(a *imagegen.Adapter, name string, model imagegen.Variant, description string) ToolDefinition {
	return ToolDefinition{
		Name:        name,
		Description: description,
		InputSchema: GPTImageInputSchema,
		Handler: func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
			var in GPTImageInput
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if err := requireArgs(in.Prompt, in.Output); err != nil {
				return nil, err
			}

			params := imagegen.GPTImageParams{
				Model:             model,
				N:                 in.N,
				Size:              in.Size,
				Quality:           in.Quality,
				Background:        in.Background,
				Moderation:        in.Moderation,
				OutputCompression: in.OutputCompression,
				OutputFormat:      in.OutputFormat,
				User:              in.User,
			}
			return runGenerate(ctx, a, name, in.Prompt, in.Output, params)
		},
	}
}
