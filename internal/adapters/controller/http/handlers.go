package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type presetResponse struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Config      qrstyle.PartialFormState `json:"config"`
}

type presetDetailResponse struct {
	presetResponse
	State qrstyle.FormState `json:"state"`
}

type savePresetRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	State       qrstyle.FormState `json:"state"`
}

type patchFormRequest struct {
	State qrstyle.FormState `json:"state"`
	Set   map[string]string `json:"set"`
}

type fieldErrorResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

type validateResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []fieldErrorResponse `json:"errors,omitempty"`
}

func toPresetResponse(p qrstyle.Preset) presetResponse {
	resp := presetResponse{Name: p.Name, Description: p.Description}
	if p.Config != nil {
		resp.Config = p.Config()
	}
	return resp
}

func fieldErrors(err error) []fieldErrorResponse {
	var out []fieldErrorResponse
	for _, e := range multierr.Errors(err) {
		var fe *qrstyle.FieldError
		if errors.As(e, &fe) {
			out = append(out, fieldErrorResponse{Field: fe.Field, Error: fe.Err.Error()})
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var fe *qrstyle.FieldError
	switch {
	case errors.As(err, &fe),
		errors.Is(err, qrstyle.ErrUnknownValue),
		errors.Is(err, qr.ErrCapacity),
		errors.Is(err, qr.ErrImage),
		errors.Is(err, errorz.ErrInvalidPresetName),
		errors.Is(err, errorz.ErrPresetLimit):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errorz.ErrPresetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errorz.ErrPresetExists):
		status = http.StatusConflict
	case errors.Is(err, errorz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errorz.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.logger.Errorf("request failed: %v", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Fields: fieldErrors(err)})
}

// decode reads a JSON body, rejecting unknown fields. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	if errors.Is(err, qrstyle.ErrUnknownValue) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
}

func (s *Server) getDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.defaults)
}

func (s *Server) getFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, qrstyle.FieldPaths())
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	state := s.defaults.Clone()
	if err := decode(r, &state); err != nil {
		s.badRequest(w, err)
		return
	}
	if err := state.Validate(); err != nil {
		writeJSON(w, http.StatusOK, validateResponse{Valid: false, Errors: fieldErrors(err)})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true})
}

func (s *Server) patchForm(w http.ResponseWriter, r *http.Request) {
	req := patchFormRequest{State: s.defaults.Clone()}
	if err := decode(r, &req); err != nil {
		s.badRequest(w, err)
		return
	}

	paths := make([]string, 0, len(req.Set))
	for path := range req.Set {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var errs error
	for _, path := range paths {
		errs = multierr.Append(errs, req.State.SetField(path, req.Set[path]))
	}
	if errs != nil {
		s.writeError(w, errs)
		return
	}
	writeJSON(w, http.StatusOK, req.State)
}

// render draws the defaults, with the optional preset and then the
// request's partial state applied on top.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay qrstyle.PartialFormState
	if err = decode(r, &overlay); err != nil {
		s.badRequest(w, err)
		return
	}

	state := s.defaults.Clone()
	if name := r.URL.Query().Get("preset"); name != "" {
		preset, err := s.presets.Get(r.Context(), owner, name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		state = preset.Apply(state)
	}
	state = state.Apply(overlay)

	res, err := s.qr.Render(r.Context(), state)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="qr.%s"`, res.Extension))
	w.Header().Set("X-Qr-Version", strconv.Itoa(res.Version))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	presets, err := s.presets.List(r.Context(), owner)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, toPresetResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getPreset(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.presets.Get(r.Context(), owner, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presetDetailResponse{
		presetResponse: toPresetResponse(p),
		State:          p.Apply(s.defaults),
	})
}

// writer resolves an owner allowed to change stored presets.
func (s *Server) writer(r *http.Request) (int64, error) {
	owner, err := s.ownerID(r)
	if err != nil {
		return 0, err
	}
	if owner == 0 {
		return 0, errorz.ErrForbidden
	}
	return owner, nil
}

func (s *Server) savePreset(w http.ResponseWriter, r *http.Request) {
	owner, err := s.writer(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	req := savePresetRequest{State: s.defaults.Clone()}
	if err = decode(r, &req); err != nil {
		s.badRequest(w, err)
		return
	}

	p, err := s.presets.Save(r.Context(), owner, req.Name, req.Description, req.State)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPresetResponse(p))
}

// putPreset replaces the named preset, creating it when missing.
func (s *Server) putPreset(w http.ResponseWriter, r *http.Request) {
	owner, err := s.writer(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	req := savePresetRequest{State: s.defaults.Clone()}
	if err = decode(r, &req); err != nil {
		s.badRequest(w, err)
		return
	}

	p, err := s.presets.Overwrite(r.Context(), owner, chi.URLParam(r, "name"), req.Description, req.State)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPresetResponse(p))
}

func (s *Server) deletePreset(w http.ResponseWriter, r *http.Request) {
	owner, err := s.writer(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err = s.presets.Delete(r.Context(), owner, chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
