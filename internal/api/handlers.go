package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"employee-api/internal/apperr"
	"employee-api/internal/domain"
	"employee-api/internal/logger"
	"employee-api/internal/validation"
)

// maxBodyBytes caps the create payload.
const maxBodyBytes = 1 << 20

type Handlers struct {
	svc EmployeeService
	log *logger.Logger
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) GetAll(w http.ResponseWriter, r *http.Request) {
	emps, err := h.svc.GetAll(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, emps)
}

func (h *Handlers) SearchByName(w http.ResponseWriter, r *http.Request) {
	q := chi.URLParam(r, "searchString")
	if strings.TrimSpace(q) == "" {
		h.respondError(w, r, apperr.Validation("", map[string]string{"searchString": "must not be blank"}))
		return
	}
	emps, err := h.svc.SearchByName(r.Context(), q)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, emps)
}

func (h *Handlers) HighestSalary(w http.ResponseWriter, r *http.Request) {
	salary, err := h.svc.HighestSalary(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, salary)
}

func (h *Handlers) TopTenEarners(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.TopTenEarners(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, names)
}

func (h *Handlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	emp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmployeeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		msg := "request body must be a JSON object"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		h.respondError(w, r, apperr.Validation(msg, nil))
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	emp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

func (h *Handlers) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	name, err := h.svc.DeleteByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, name)
}

// idParam extracts {id} and rejects blank or non-UUID values.
func (h *Handlers) idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.respondError(w, r, apperr.Validation("", map[string]string{"id": "must not be blank"}))
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		h.respondError(w, r, apperr.Validation("", map[string]string{"id": "must be a valid UUID"}))
		return "", false
	}
	return id, true
}
