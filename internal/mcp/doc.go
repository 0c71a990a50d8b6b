// Package mcp implements the server side of the Model Context Protocol
// (JSON-RPC 2.0 over newline-delimited JSON on stdio).
//
// Includes:
//   - Message/Error types with the standard JSON-RPC error codes.
//   - Transport: Send/Receive/Close; StdioTransport reads one request per
//     line from stdin and writes one response per line to stdout.
//   - Server: tool registration and dispatch for initialize, ping,
//     tools/list and tools/call.
//
// Invariant: stdout carries protocol frames only; all logging goes to stderr.
package mcp
