package imagegen

// Variant identifies one of the supported upstream image models. It is fixed
// at dispatch time and selects which parameter record shape applies.
type Variant string

const (
	VariantGPTImage     Variant = "gpt-image-1"
	VariantGPTImageMini Variant = "gpt-image-1-mini"
	VariantDallE3       Variant = "dall-e-3"
	VariantDallE2       Variant = "dall-e-2"
)

// PromptLimit returns the documented prompt length for the variant, in
// characters. The limit is advisory: over-length prompts are logged, never
// rejected, and the upstream API stays the authority.
func (v Variant) PromptLimit() int {
	switch v {
	case VariantGPTImage, VariantGPTImageMini:
		return 32000
	case VariantDallE3:
		return 4000
	case VariantDallE2:
		return 1000
	default:
		return 0
	}
}
