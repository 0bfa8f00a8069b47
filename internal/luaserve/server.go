// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaserve

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/activation"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"

	"treelua.dev/treelua/internal/astjson"
	"treelua.dev/treelua/internal/baselib"
	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaval"
	"treelua.dev/treelua/internal/runhistory"

	"zombiezen.com/go/log"
)

// Server is the HTTP execution service: it decodes a JSON AST document,
// runs it against a fresh global scope seeded with the base library, and
// reports the result.
type Server struct {
	Interp  *luaeval.Interpreter
	History *runhistory.Store // may be nil to disable run-history recording
}

// New returns a [*Server] using it to run scripts.
func New(it *luaeval.Interpreter, history *runhistory.Store) *Server {
	return &Server{Interp: it, History: history}
}

// Handler returns the service's http.Handler: request logging via
// gorilla/handlers wraps request-ID assignment, which wraps the route mux.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", srv.handleHealthz)
	mux.HandleFunc("POST /execute", srv.handleExecute)
	return handlers.CombinedLoggingHandler(logWriter{}, withRequestID(mux))
}

// logWriter adapts zombiezen.com/go/log to the io.Writer
// handlers.CombinedLoggingHandler wants for its access log.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Infof(context.Background(), "%s", p)
	return len(p), nil
}

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (srv *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

type executeRequest struct {
	Source string         `json:"source"`
	AST    jsontext.Value `json:"ast"`
}

type executeResponse struct {
	RequestID string `json:"requestId"`
	OK        bool   `json:"ok"`
	Values    []any  `json:"values,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (srv *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := requestID(ctx)
	started := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, executeResponse{RequestID: id, Error: err.Error()})
		return
	}
	var req executeRequest
	if err := jsonv2.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, executeResponse{RequestID: id, Error: err.Error()})
		return
	}

	block, err := astjson.DecodeBlock([]byte(req.AST))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, executeResponse{RequestID: id, Error: err.Error()})
		return
	}

	scope := luaval.NewRootScope()
	baselib.Open(srv.Interp, scope, baselib.Options{})

	results, runErr := srv.Interp.Execute(block, scope)

	resp := executeResponse{RequestID: id}
	if runErr != nil {
		resp.Error = runErr.Error()
	} else {
		resp.OK = true
		for _, v := range results {
			resp.Values = append(resp.Values, valueToJSON(v))
		}
	}

	if srv.History != nil {
		result := resp.Error
		if resp.OK {
			result = "ok"
		}
		if err := srv.History.Record(ctx, runhistory.Record{
			RequestID:  id,
			Source:     req.Source,
			StartedAt:  started,
			FinishedAt: time.Now(),
			OK:         resp.OK,
			Result:     result,
		}); err != nil {
			log.Errorf(ctx, "runhistory: record: %v", err)
		}
	}

	status := http.StatusOK
	if runErr != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := jsonv2.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// valueToJSON projects a Lua value down to a JSON-representable shape for
// the HTTP response. Tables become JSON objects holding only their
// string-keyed entries. Functions have no JSON representation and are
// reported as the string "function".
func valueToJSON(v luaval.Value) any {
	switch v := v.(type) {
	case nil:
		return nil
	case luaval.Bool:
		return bool(v)
	case luaval.Number:
		return float64(v)
	case luaval.String:
		return string(v)
	case *luaval.Table:
		out := make(map[string]any, 0)
		for k, val, ok := v.Next(nil); ok; k, val, ok = v.Next(k) {
			if ks, isStr := k.(luaval.String); isStr {
				out[string(ks)] = valueToJSON(val)
			}
		}
		return out
	default:
		return "function"
	}
}

// Listen returns the listener the service should serve on: an inherited
// systemd socket-activation listener if one was passed (LISTEN_FDS set by
// the service manager), otherwise a fresh listener bound to addr.
func Listen(addr string) (net.Listener, error) {
	listeners, err := activation.Listeners()
	if err != nil {
		return nil, err
	}
	if len(listeners) > 0 {
		return listeners[0], nil
	}
	return net.Listen("tcp", addr)
}
