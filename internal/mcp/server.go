package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ToolHandler executes one tool invocation. Returning a *Error (normally via
// InvalidParams) surfaces a protocol-level error to the client; any handled
// failure must instead be reported inside the CallToolResult with IsError set.
type ToolHandler func(ctx context.Context, args map[string]any) (*CallToolResult, error)

// Tool is an invocable capability exposed through tools/list and tools/call.
type Tool struct {
	Name        string
	Description string
	InputSchema any
	Handler     ToolHandler
}

// toolDescriptor is the tools/list wire shape.
type toolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

// Server dispatches JSON-RPC requests to a fixed catalog of tools. Tools are
// registered once at startup; the catalog order is the registration order.
type Server struct {
	name    string
	version string

	tools []Tool
	index map[string]int

	logger *zap.Logger
}

// NewServer creates a server with an empty tool catalog.
func NewServer(name, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:    name,
		version: version,
		index:   make(map[string]int),
		logger:  logger.With(zap.String("component", "mcp_server")),
	}
}

// RegisterTool adds a tool to the catalog.
func (s *Server) RegisterTool(t Tool) error {
	if t.Name == "" {
		return errors.New("tool name is required")
	}
	if t.Description == "" {
		return errors.New("tool description is required")
	}
	if t.InputSchema == nil {
		return errors.New("tool input schema is required")
	}
	if t.Handler == nil {
		return errors.New("tool handler is required")
	}
	if _, ok := s.index[t.Name]; ok {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}

	s.index[t.Name] = len(s.tools)
	s.tools = append(s.tools, t)

	s.logger.Info("tool registered", zap.String("name", t.Name))
	return nil
}

// HandleMessage dispatches one incoming message and returns the response to
// send, or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, msg *Message) *Message {
	if msg == nil || msg.Method == "" {
		return NewErrorResponse(nil, CodeInvalidRequest, "empty message", nil)
	}

	s.logger.Debug("handling message", zap.String("method", msg.Method), zap.Any("id", msg.ID))

	// Notifications carry no ID and get no response.
	if msg.ID == nil {
		s.handleNotification(msg)
		return nil
	}

	result, rpcErr := s.dispatch(ctx, msg.Method, msg.Params)
	if rpcErr != nil {
		return &Message{JSONRPC: "2.0", ID: msg.ID, Error: rpcErr}
	}
	return NewResponse(msg.ID, result)
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("unhandled notification", zap.String("method", msg.Method))
	}
}

func (s *Server) dispatch(ctx context.Context, method string, params map[string]any) (any, *Error) {
	switch method {
	case "initialize":
		return s.handleInitialize(), nil
	case "ping":
		return map[string]any{}, nil
	case "tools/list":
		return s.handleToolsList(), nil
	case "tools/call":
		return s.handleToolsCall(ctx, params)
	default:
		return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method not found: %s", method)}
	}
}

func (s *Server) handleInitialize() any {
	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	}
}

func (s *Server) handleToolsList() any {
	descriptors := make([]toolDescriptor, 0, len(s.tools))
	for _, t := range s.tools {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return map[string]any{"tools": descriptors}
}

func (s *Server) handleToolsCall(ctx context.Context, params map[string]any) (any, *Error) {
	name, _ := params["name"].(string)
	if name == "" {
		return nil, InvalidParams("missing required parameter: name")
	}

	i, ok := s.index[name]
	if !ok {
		// An unrecognised tool is a routing failure, same as an unknown method.
		return nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown tool: %s", name)}
	}

	// arguments may be absent for tools without required parameters.
	args, _ := params["arguments"].(map[string]any)

	result, err := s.tools[i].Handler(ctx, args)
	if err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			s.logger.Warn("tool call rejected", zap.String("name", name), zap.Error(err))
			return nil, rpcErr
		}
		s.logger.Error("tool handler error", zap.String("name", name), zap.Error(err))
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	return result, nil
}

// Serve runs the message loop over the transport until the context is
// cancelled or the peer disconnects. Malformed frames produce a parse-error
// response and the loop continues.
func (s *Server) Serve(ctx context.Context, transport Transport) error {
	if transport == nil {
		return errors.New("transport cannot be nil")
	}

	s.logger.Info("server starting",
		zap.String("name", s.name),
		zap.String("version", s.version),
		zap.Int("tools", len(s.tools)),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping: context cancelled")
			return ctx.Err()
		default:
		}

		msg, err := transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("server stopping: context cancelled")
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				s.logger.Info("server stopping: peer disconnected")
				return nil
			}
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				s.logger.Warn("malformed frame", zap.Error(parseErr))
				resp := NewErrorResponse(nil, CodeParseError, "parse error", nil)
				if sendErr := transport.Send(ctx, resp); sendErr != nil {
					s.logger.Error("send parse-error response", zap.Error(sendErr))
				}
				continue
			}
			return fmt.Errorf("transport receive: %w", err)
		}

		if msg.JSONRPC != "" && msg.JSONRPC != "2.0" {
			resp := NewErrorResponse(msg.ID, CodeInvalidRequest, "unsupported JSON-RPC version", nil)
			if sendErr := transport.Send(ctx, resp); sendErr != nil {
				s.logger.Error("send error response", zap.Error(sendErr))
			}
			continue
		}

		resp := s.HandleMessage(ctx, msg)
		if resp == nil {
			continue
		}
		if sendErr := transport.Send(ctx, resp); sendErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("send response", zap.Error(sendErr))
		}
	}
}
