// Package imagegen translates validated per-model parameter records into
// OpenAI Images API calls and normalizes the response into local file writes.
//
// Includes:
//   - Variant: the four supported upstream models.
//   - Params: a sealed per-variant parameter union with whitelist validation.
//   - Adapter: one upstream call -> zero-or-more written files, with
//     placeholder substitution when the upstream omits image data.
package imagegen
