package channel

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrMissingLength = errors.New("missing content-length")
	ErrUnknownMethod = errors.New("unknown method")
	ErrBadArguments  = errors.New("bad arguments")
	ErrMalformedCall = errors.New("malformed call")
)

// Call is an inbound message. Calls without an ID expect no reply.
type Call struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type resultReply struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result"`
}

type errorReply struct {
	ID    json.RawMessage `json:"id"`
	Error string          `json:"error"`
}

// Notification is an outbound host event.
type Notification struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments"`
}

// ReadMessage reads one Content-Length framed body.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	length := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.ToLower(strings.TrimSpace(parts[0])) == "content-length" {
			val := strings.TrimSpace(parts[1])
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				length = n
			}
		}
	}
	if length < 0 {
		return nil, ErrMissingLength
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf, nil
}

// WriteMessage marshals v and writes it with a Content-Length header.
func WriteMessage(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(payload))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}
