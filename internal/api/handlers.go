package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/highweigh/pkg/buildinfo"
	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error     errors.Code `json:"error"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

type listResponse struct {
	Roadmaps []string `json:"roadmaps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		return
	}

	docFormat := roadmap.FormatFromContentType(r.Header.Get("Content-Type"))
	if docFormat == "" {
		docFormat = roadmap.DetectFormat("", body)
	}

	opts, err := s.renderOptions(r, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Data = body
	opts.DataFormat = docFormat
	s.render(w, r, opts)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no roadmap store configured"))
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, listResponse{Roadmaps: names})
}

func (s *Server) handleStored(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no roadmap store configured"))
		return
	}

	name, format := splitFormat(chi.URLParam(r, "name"))
	if q := r.URL.Query().Get("format"); q != "" {
		format = q
	}
	opts, err := s.renderOptions(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Ref = name
	opts.Source = s.store
	s.render(w, r, opts)
}

// splitFormat splits "platform.png" into ("platform", "png"). Names whose
// suffix is not an output format are returned whole.
func splitFormat(name string) (string, string) {
	i := strings.LastIndexByte(name, '.')
	if i > 0 && pipeline.ValidFormats[name[i+1:]] {
		return name[:i], name[i+1:]
	}
	return name, ""
}

func (s *Server) renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Formats:    []string{format},
		Stylesheet: s.Stylesheet,
		Refresh:    r.URL.Query().Get("refresh") == "true",
		Logger:     loggerFrom(r.Context()),
	}
	if today := r.URL.Query().Get("today"); today != "" {
		d, err := roadmap.ParseDate(today)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidDate, err, "today")
		}
		opts.Today = &d
	}
	return opts, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	format := opts.Formats[0]
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Highweigh-Cache", cacheState)
	w.Header().Set("ETag", `"`+res.DocHash[:16]+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= 500 {
		loggerFrom(r.Context()).Error("request failed", "err", err)
	} else {
		loggerFrom(r.Context()).Debug("request rejected", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg, RequestID: requestIDFrom(r.Context())})
}

func statusFor(err error) int {
	code := errors.GetCode(err)
	switch code.Class() {
	case errors.ClassInput:
		return http.StatusBadRequest
	case errors.ClassMissing:
		return http.StatusNotFound
	case errors.ClassUpstream:
		if code == errors.ErrCodeTimeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}
	if code == errors.ErrCodeUnsupported {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
