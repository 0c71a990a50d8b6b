// Package tools defines the image-generation tool catalog.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Four tools: generate_image_gpt, generate_image_gpt_mini,
//     generate_image_dalle3, generate_image_dalle2.
//   - Invariants: missing prompt/output aborts before any upstream call;
//     generation failures surface as isError results, never protocol faults.
package tools
