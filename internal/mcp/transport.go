package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Transport moves protocol messages between the server and its peer.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	// Receive blocks until a message arrives. A malformed frame is reported
	// as a *ParseError so the serve loop can answer with a parse-error
	// response and keep going; io.EOF means the peer is gone.
	Receive(ctx context.Context) (*Message, error)
	Close() error
}

// ParseError marks a frame that could not be decoded as JSON-RPC.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse message: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// StdioTransport frames messages as newline-delimited JSON: one request per
// line on the reader, one response per line on the writer.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex
}

// NewStdioTransport wraps the given reader/writer pair, normally os.Stdin
// and os.Stdout.
func NewStdioTransport(r io.Reader, w io.Writer) *StdioTransport {
	return &StdioTransport{reader: bufio.NewReader(r), writer: w}
}

// Send writes the message followed by a newline. Writes are serialised so
// responses never interleave.
func (t *StdioTransport) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if _, err := t.writer.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Receive reads the next non-empty line and decodes it. io.EOF propagates
// unchanged; a line that is not valid JSON yields a *ParseError.
func (t *StdioTransport) Receive(ctx context.Context) (*Message, error) {
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			// A trailing unterminated line is still a frame.
			if err == io.EOF && strings.TrimSpace(line) != "" {
				return decodeLine(line)
			}
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		return decodeLine(line)
	}
}

func decodeLine(line string) (*Message, error) {
	var msg Message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &msg, nil
}

// Close is a no-op; the process owns stdin and stdout.
func (t *StdioTransport) Close() error { return nil }
