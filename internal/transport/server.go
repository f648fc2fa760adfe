package transport

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/caide/internal/app"
)

// Request is one decoded companion message.
type Request struct {
	// ID correlates the response with the request. Generated when the
	// client omits it.
	ID string

	// Root is the workspace root directory the action runs in.
	Root string

	// Action names the unit of work.
	Action string

	// Args carries action-specific parameters.
	Args gjson.Result
}

// Handler executes one request as a complete runtime invocation. The
// returned string, when non-empty, is a raw JSON value placed in the
// response's data field.
type Handler func(req Request) (string, error)

// Server reads framed requests from in and writes one framed response
// per request to out, strictly in order.
type Server struct {
	in      io.Reader
	out     io.Writer
	handler Handler
	log     *app.Logger
}

// NewServer creates a server. A nil logger defaults to a silent one.
func NewServer(in io.Reader, out io.Writer, handler Handler, log *app.Logger) *Server {
	if log == nil {
		log = app.NewLogger(app.Silent, nil)
	}
	return &Server{in: in, out: out, handler: handler, log: log}
}

// Serve handles requests until the input stream ends. A malformed
// request produces an error response but does not stop the loop;
// framing and write failures do.
func (s *Server) Serve() error {
	for {
		frame, err := ReadFrame(s.in)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		resp := s.handleFrame(frame)
		if err := WriteFrame(s.out, resp); err != nil {
			return err
		}
	}
}

// handleFrame decodes one request and runs the handler.
func (s *Server) handleFrame(frame []byte) []byte {
	req, err := parseRequest(frame)
	if err != nil {
		return buildResponse(req.ID, "", err)
	}
	s.log.Debug("request %s: %s in %s", req.ID, req.Action, req.Root)
	data, err := s.handler(req)
	if err != nil {
		s.log.Debug("request %s failed: %v", req.ID, err)
	}
	return buildResponse(req.ID, data, err)
}

// parseRequest decodes a request frame. The returned Request always
// carries a usable ID, even on failure, so the client can correlate
// the error response.
func parseRequest(frame []byte) (Request, error) {
	req := Request{ID: uuid.NewString()}
	if !gjson.ValidBytes(frame) {
		return req, fmt.Errorf("request is not valid JSON")
	}
	if id := gjson.GetBytes(frame, "id"); id.Exists() {
		req.ID = id.String()
	}
	req.Root = gjson.GetBytes(frame, "root").String()
	req.Action = gjson.GetBytes(frame, "action").String()
	req.Args = gjson.GetBytes(frame, "args")
	if req.Action == "" {
		return req, fmt.Errorf("request has no action")
	}
	if req.Root == "" {
		return req, fmt.Errorf("request has no root")
	}
	return req, nil
}

// buildResponse assembles a response frame body.
func buildResponse(id, data string, reqErr error) []byte {
	resp := []byte(`{}`)
	resp, _ = sjson.SetBytes(resp, "id", id)
	resp, _ = sjson.SetBytes(resp, "ok", reqErr == nil)
	if reqErr != nil {
		resp, _ = sjson.SetBytes(resp, "error", reqErr.Error())
	} else if data != "" {
		resp, _ = sjson.SetRawBytes(resp, "data", []byte(data))
	}
	return resp
}
