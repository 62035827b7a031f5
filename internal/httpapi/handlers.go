package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/qrforge/qrlive"
)

type encodeRequest struct {
	Text  string `json:"text"`
	Level string `json:"level,omitempty"`
}

type encodeResponse struct {
	Version int    `json:"version"`
	Level   string `json:"level"`
	Mask    int    `json:"mask"`
	Size    int    `json:"size"`
	SVG     string `json:"svg"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// httpStatus maps encode and export errors to status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, qrlive.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, qrlive.ErrLevel), errors.Is(err, qrlive.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(err))
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (s *Server) reqLevel(spec string) (qrlive.Level, error) {
	if spec == "" {
		return s.level, nil
	}
	return qrlive.ParseLevel(spec)
}

// maxEncodeBody bounds the encode request body; the largest valid
// payload is well under 4 KiB of JSON.
const maxEncodeBody = 64 << 10

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEncodeBody)
	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status, msg := http.StatusBadRequest, "invalid request body"
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			status, msg = http.StatusRequestEntityTooLarge,
				"request body too large"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(errorResponse{Error: msg})
		return
	}
	level, err := s.reqLevel(req.Level)
	if err != nil {
		writeError(w, err)
		return
	}
	sym, err := qrlive.Encode(req.Text, level)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(encodeResponse{
		Version: sym.Version,
		Level:   sym.Level.String(),
		Mask:    sym.Mask,
		Size:    sym.Size(),
		SVG:     sym.SVG(qrlive.QuietZone),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	level, err := s.reqLevel(q.Get("level"))
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := qrlive.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	sym, err := qrlive.Encode(text, level)
	if err != nil {
		writeError(w, err)
		return
	}
	art, err := qrlive.Export(sym, format, "qr")
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", art.MIME)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Write(art.Data)
}
