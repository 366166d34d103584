package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"castromotors/pkg/dealership"
	"castromotors/pkg/httputil"
	"castromotors/pkg/otel"
)

// resource serves list/get/create/update/delete for one entity kind under
// /api/<path>.
type resource[T dealership.Entity[T]] struct {
	api  *API
	kind string
	svc  *dealership.Service[T]
	// one is the single-item route, used to build Location headers.
	one *mux.Route
}

func registerResource[T dealership.Entity[T]](a *API, r *mux.Router, path, kind string, svc *dealership.Service[T]) {
	h := &resource[T]{api: a, kind: kind, svc: svc}

	sub := r.PathPrefix("/" + path).Subrouter()
	sub.HandleFunc("", h.list).Methods(http.MethodGet)
	sub.HandleFunc("", h.create).Methods(http.MethodPost)
	h.one = sub.HandleFunc("/{id}", h.get).Methods(http.MethodGet).Name("get-" + path)
	sub.HandleFunc("/{id}", h.update).Methods(http.MethodPut)
	sub.HandleFunc("/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "list "+h.kind)
	defer span.End()

	items, err := h.svc.List(ctx)
	if err != nil {
		h.api.log.Error(ctx, "list "+h.kind, "error", err)
		httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.JSONResponse(w, http.StatusOK, items)
}

func (h *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "get "+h.kind)
	defer span.End()

	v, err := h.svc.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	httputil.JSONResponse(w, http.StatusOK, v)
}

func (h *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "create "+h.kind)
	defer span.End()

	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.svc.Create(ctx, in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	if u, err := h.one.URL("id", v.EntityID()); err == nil {
		w.Header().Set("Location", u.String())
	}
	httputil.JSONResponse(w, http.StatusCreated, v)
}

func (h *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "update "+h.kind)
	defer span.End()

	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Update(ctx, mux.Vars(r)["id"], in); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "delete "+h.kind)
	defer span.End()

	if err := h.svc.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resource[T]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, dealership.ErrNotFound) {
		httputil.ErrorResponse(w, http.StatusNotFound, h.kind+" not found")
		return
	}
	h.api.log.Error(r.Context(), op+" "+h.kind, "error", err)
	httputil.ErrorResponse(w, http.StatusInternalServerError, err.Error())
}
