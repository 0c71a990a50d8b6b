package imagegen

import (
	"fmt"

	openai "github.com/openai/openai-go/v3"
)

// Params is the per-variant parameter record handed to the Adapter. It is a
// sealed union: exactly one implementation exists per parameter shape, and
// each carries only the fields legal for its variant.
type Params interface {
	Variant() Variant
	// Validate checks every populated field against the variant's legal value
	// space. Zero values mean "unset" and are always legal.
	Validate() error

	// generateParams builds the upstream request body. Inline (b64_json)
	// encoding is always requested for the dall-e models; gpt-image models
	// return inline bytes unconditionally and reject the response_format
	// parameter.
	generateParams(prompt string) openai.ImageGenerateParams
	// outputFormat names the container format of the generated images, used
	// to pick the placeholder encoding. Defaults to png.
	outputFormat() string
}

// GPTImageParams is the parameter record shared by gpt-image-1 and
// gpt-image-1-mini; Model selects between the two tags.
type GPTImageParams struct {
	Model             Variant
	N                 int
	Size              string
	Quality           string
	Background        string
	Moderation        string
	OutputCompression *int
	OutputFormat      string
	User              string
}

func (p GPTImageParams) Variant() Variant { return p.Model }

func (p GPTImageParams) Validate() error {
	if p.Model != VariantGPTImage && p.Model != VariantGPTImageMini {
		return fmt.Errorf("model %q is not a gpt-image variant", p.Model)
	}
	if err := checkRange("n", p.N, 1, 10); err != nil {
		return err
	}
	if err := checkEnum("size", p.Size, "1024x1024", "1536x1024", "1024x1536", "auto"); err != nil {
		return err
	}
	if err := checkEnum("quality", p.Quality, "low", "medium", "high", "auto"); err != nil {
		return err
	}
	if err := checkEnum("background", p.Background, "transparent", "opaque", "auto"); err != nil {
		return err
	}
	if err := checkEnum("moderation", p.Moderation, "low", "auto"); err != nil {
		return err
	}
	if p.OutputCompression != nil {
		if c := *p.OutputCompression; c < 0 || c > 100 {
			return fmt.Errorf("output_compression must be between 0 and 100, got %d", c)
		}
	}
	return checkEnum("output_format", p.OutputFormat, "png", "jpeg", "webp")
}

func (p GPTImageParams) generateParams(prompt string) openai.ImageGenerateParams {
	out := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(p.Model),
	}
	if p.N > 0 {
		out.N = openai.Int(int64(p.N))
	}
	if p.Size != "" {
		out.Size = openai.ImageGenerateParamsSize(p.Size)
	}
	if p.Quality != "" {
		out.Quality = openai.ImageGenerateParamsQuality(p.Quality)
	}
	if p.Background != "" {
		out.Background = openai.ImageGenerateParamsBackground(p.Background)
	}
	if p.Moderation != "" {
		out.Moderation = openai.ImageGenerateParamsModeration(p.Moderation)
	}
	if p.OutputCompression != nil {
		out.OutputCompression = openai.Int(int64(*p.OutputCompression))
	}
	if p.OutputFormat != "" {
		out.OutputFormat = openai.ImageGenerateParamsOutputFormat(p.OutputFormat)
	}
	if p.User != "" {
		out.User = openai.String(p.User)
	}
	return out
}

func (p GPTImageParams) outputFormat() string {
	if p.OutputFormat == "" {
		return "png"
	}
	return p.OutputFormat
}

// DallE3Params carries the dall-e-3 parameter subset. The model only ever
// generates one image per call, so there is no image count field: n is pinned
// to 1 when the request is built, whatever the caller asked for.
type DallE3Params struct {
	Size    string
	Quality string
	Style   string
	User    string
}

func (p DallE3Params) Variant() Variant { return VariantDallE3 }

func (p DallE3Params) Validate() error {
	if err := checkEnum("size", p.Size, "1024x1024", "1792x1024", "1024x1792"); err != nil {
		return err
	}
	if err := checkEnum("quality", p.Quality, "standard", "hd"); err != nil {
		return err
	}
	return checkEnum("style", p.Style, "vivid", "natural")
}

func (p DallE3Params) generateParams(prompt string) openai.ImageGenerateParams {
	out := openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModelDallE3,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	}
	if p.Size != "" {
		out.Size = openai.ImageGenerateParamsSize(p.Size)
	}
	if p.Quality != "" {
		out.Quality = openai.ImageGenerateParamsQuality(p.Quality)
	}
	if p.Style != "" {
		out.Style = openai.ImageGenerateParamsStyle(p.Style)
	}
	if p.User != "" {
		out.User = openai.String(p.User)
	}
	return out
}

func (p DallE3Params) outputFormat() string { return "png" }

// DallE2Params carries the dall-e-2 parameter subset.
type DallE2Params struct {
	N    int
	Size string
	User string
}

func (p DallE2Params) Variant() Variant { return VariantDallE2 }

func (p DallE2Params) Validate() error {
	if err := checkRange("n", p.N, 1, 10); err != nil {
		return err
	}
	return checkEnum("size", p.Size, "256x256", "512x512", "1024x1024")
}

func (p DallE2Params) generateParams(prompt string) openai.ImageGenerateParams {
	out := openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModelDallE2,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	}
	if p.N > 0 {
		out.N = openai.Int(int64(p.N))
	}
	if p.Size != "" {
		out.Size = openai.ImageGenerateParamsSize(p.Size)
	}
	if p.User != "" {
		out.User = openai.String(p.User)
	}
	return out
}

func (p DallE2Params) outputFormat() string { return "png" }

// checkEnum accepts the zero value ("" = unset) or any of the allowed values.
func checkEnum(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got %q", field, allowed, value)
}

// checkRange accepts 0 (unset) or any value within [min, max].
func checkRange(field string, value, min, max int) error {
	if value == 0 {
		return nil
	}
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", field, min, max, value)
	}
	return nil
}
