package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/heathj/xmltree/parser"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type diagnostic struct {
	Kind    string `json:"kind"`
	Token   int    `json:"token"`
	Offset  int    `json:"offset"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type parseResponse struct {
	Nodes       []parser.Node `json:"nodes"`
	Diagnostics []diagnostic  `json:"diagnostics"`
	Error       string        `json:"error,omitempty"`
}

func queryBool(r *http.Request, key string, fallback bool) bool {
	if v := r.URL.Query().Get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func (s *Server) parseOptions(r *http.Request) []parser.Option {
	var opts []parser.Option
	if queryBool(r, "strict", s.cfg.Strict) {
		opts = append(opts, parser.Strict())
	}
	if queryBool(r, "keep_quotes", s.cfg.KeepQuotes) {
		opts = append(opts, parser.KeepQuotes())
	}
	return opts
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		jsonError(w, "format must be text or json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	doc, err := parser.Parse(r.Body, s.parseOptions(r)...)
	if doc == nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "document exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes", http.StatusRequestEntityTooLarge)
			return
		}
		s.log.WithError(err).Warn("failed to read document")
		jsonError(w, "failed to read document", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
	}
	for _, d := range doc.Diagnostics {
		s.log.WithFields(logrus.Fields{"kind": d.Kind.String(), "token": d.Token}).Debug(d.Error())
	}

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		if err != nil {
			if _, werr := w.Write([]byte(err.Error() + "\n")); werr != nil {
				s.log.WithError(werr).Warn("failed to write response")
			}
			return
		}
		if err := doc.Fprint(w, parser.RootIndex); err != nil {
			s.log.WithError(err).Warn("failed to write response")
		}
		return
	}

	resp := parseResponse{
		Nodes:       doc.Nodes,
		Diagnostics: make([]diagnostic, 0, len(doc.Diagnostics)),
	}
	for _, d := range doc.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diagnostic{
			Kind:    d.Kind.String(),
			Token:   d.Token,
			Offset:  d.Offset,
			Tag:     d.Tag,
			Message: d.Error(),
		})
	}
	if err != nil {
		resp.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Warn("failed to write response")
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
