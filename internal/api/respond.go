package api

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.WithError(err).Warn("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a JSON request body into v, answering 400 on failure
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request")
		return false
	}
	return true
}

// muxErrors names the plain-text replies http.ServeMux produces itself
var muxErrors = map[int]string{
	http.StatusNotFound:         "Not found",
	http.StatusMethodNotAllowed: "Method not allowed",
}

// jsonErrorWriter rewrites the mux's plain-text 404 and 405 as JSON error
// bodies. Handler output, which is never text/plain, passes through.
type jsonErrorWriter struct {
	http.ResponseWriter
	swallow bool
}

func (w *jsonErrorWriter) WriteHeader(status int) {
	msg, ok := muxErrors[status]
	if !ok || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		w.ResponseWriter.WriteHeader(status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Del("X-Content-Type-Options")
	w.ResponseWriter.WriteHeader(status)
	_ = json.NewEncoder(w.ResponseWriter).Encode(errorResponse{Error: msg})
	w.swallow = true
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.swallow {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Hijack lets the websocket upgrader take over the connection
func (w *jsonErrorWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

func (w *jsonErrorWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
