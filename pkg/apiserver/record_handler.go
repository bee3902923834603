package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/observability"
	"github.com/bite-admin/bite/pkg/store"
)

// resource serves the REST collection of one record type.
type resource[T model.Record] struct {
	records  store.RecordStore[T]
	match    func(T, url.Values) bool
	validate func(*T) error
	setID    func(*T, string)
	metrics  *observability.Metrics
}

func (h *resource[T]) kind() string {
	var zero T
	return zero.Kind()
}

// storeError maps a store error onto an HTTP status.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleList returns the records matching the query. Keys ending in [like]
// request a case-insensitive substring match; unknown keys are ignored.
func (h *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.records.List(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	query := r.URL.Query()
	out := make([]T, 0, len(all))
	for _, rec := range all {
		if h.match(rec, query) {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *resource[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := model.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.records.Get(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleCreate stores a new record. A missing id is assigned a UUID.
func (h *resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if rec.RecordID() == "" {
		h.setID(&rec, uuid.NewString())
	} else if err := model.ValidateID(rec.RecordID()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate(&rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.records.Create(r.Context(), rec); err != nil {
		storeError(w, err)
		return
	}
	h.metrics.RecordCreated(h.kind())
	writeJSON(w, http.StatusCreated, rec)
}

// handleUpdate replaces a record. The id in the path wins over the body.
func (h *resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := model.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if got := rec.RecordID(); got != "" && got != id {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s id %q does not match path id %q", h.kind(), got, id))
		return
	}
	h.setID(&rec, id)
	if err := h.validate(&rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.records.Update(r.Context(), rec); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := model.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.records.Delete(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	h.metrics.RecordDeleted(h.kind())
	w.WriteHeader(http.StatusNoContent)
}
