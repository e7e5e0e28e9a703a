package channel

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kobzarvs/richfield/internal/config"
	"github.com/kobzarvs/richfield/internal/logger"
	"github.com/kobzarvs/richfield/internal/textfield"
)

// Server drives one Field from framed calls and reports the field's host
// notifications on the same stream.
type Server struct {
	field  *textfield.Field
	tokens config.Tokens
	out    io.Writer
	mu     sync.Mutex // guards out
}

func NewServer(cfg config.Config, w io.Writer) *Server {
	s := &Server{tokens: cfg.Tokens, out: w}
	s.field = textfield.New(cfg.Options(), s)
	return s
}

func (s *Server) Field() *textfield.Field { return s.field }

type frame struct {
	msg []byte
	err error
}

// Serve handles calls from r until it is exhausted, a read fails or ctx is
// done. Frames are read on a separate goroutine so that cancellation is seen
// while r is idle; calls are still handled one at a time on the caller's
// goroutine. A reader blocked at cancellation is abandoned, not closed.
func (s *Server) Serve(ctx context.Context, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frames := make(chan frame)
	go readFrames(ctx, bufio.NewReader(r), frames)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-frames:
			if f.err == nil {
				s.handle(f.msg)
				continue
			}
			if errors.Is(f.err, io.EOF) {
				return nil
			}
			if errors.Is(f.err, ErrMissingLength) {
				logger.Channel.Warn("dropping frame", "error", f.err)
				continue
			}
			return fmt.Errorf("read message: %w", f.err)
		}
	}
}

// readFrames sends frames from br until a read fails with anything other
// than ErrMissingLength, or ctx is done.
func readFrames(ctx context.Context, br *bufio.Reader, out chan<- frame) {
	for {
		msg, err := ReadMessage(br)
		select {
		case out <- frame{msg: msg, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil && !errors.Is(err, ErrMissingLength) {
			return
		}
	}
}

func (s *Server) handle(msg []byte) {
	var call Call
	if err := json.Unmarshal(msg, &call); err != nil {
		s.malformed(msg, err)
		return
	}
	result, err := s.Dispatch(call.Method, call.Arguments)
	replied := len(call.ID) > 0
	logger.Channel.Call(call.Method, replied, err)
	if !replied {
		return
	}
	var reply any = resultReply{ID: call.ID, Result: result}
	if err != nil {
		reply = errorReply{ID: call.ID, Error: err.Error()}
	}
	if err := s.write(reply); err != nil {
		logger.Channel.Error("write reply failed", "method", call.Method, "error", err)
	}
}

// malformed answers a body that is not a valid call. An error reply is only
// possible when the body is still a JSON object with an id.
func (s *Server) malformed(msg []byte, err error) {
	err = fmt.Errorf("%w: %v", ErrMalformedCall, err)
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if json.Unmarshal(msg, &head) != nil || len(head.ID) == 0 {
		logger.Channel.Warn("malformed call dropped", "error", err)
		return
	}
	logger.Channel.Warn("malformed call", "id", string(head.ID), "error", err)
	if werr := s.write(errorReply{ID: head.ID, Error: err.Error()}); werr != nil {
		logger.Channel.Error("write reply failed", "error", werr)
	}
}

func (s *Server) write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteMessage(s.out, v)
}

func (s *Server) notify(method string, args any) {
	if err := s.write(Notification{Method: method, Arguments: args}); err != nil {
		logger.Channel.Error("notify failed", "method", method, "error", err)
	}
}

func (s *Server) UpdateFocus(focused bool)      { s.notify("updateFocus", focused) }
func (s *Server) UpdateCursor(position int)     { s.notify("updateCursor", position) }
func (s *Server) UpdateValue(v textfield.Value) { s.notify("updateValue", v) }
func (s *Server) SubmitText(text string)        { s.notify("submitText", text) }
func (s *Server) HideKeyboard()                 { s.notify("hideKeyboard", nil) }
