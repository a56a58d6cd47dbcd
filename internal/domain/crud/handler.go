package crud

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wapoki-api/internal/domain/catalog"
)

// Cuerpos fijos hacia el cliente: nunca texto crudo de la base.
const (
	msgMissingFields = "Todos los campos son requeridos"
	msgInvalidJSON   = "JSON inválido"
	msgConflict      = "Conflicto con datos relacionados"
	msgInternal      = "Error interno del servidor"
)

// RouteOption ajusta el montaje de rutas genéricas.
type RouteOption func(*routeConfig)

type routeConfig struct {
	createOverrides map[string]http.HandlerFunc
}

// WithCreateOverride reemplaza el POST genérico de una entidad (por nombre
// canónico) con un handler propio. También aplica a sus alias.
func WithCreateOverride(entity string, h http.HandlerFunc) RouteOption {
	return func(c *routeConfig) {
		c.createOverrides[entity] = h
	}
}

// RegisterRoutes monta el CRUD uniforme de cada entidad del catálogo:
// GET/POST en la colección, PUT/DELETE por id. Los alias montan las mismas
// rutas sobre la misma entidad.
func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger, opts ...RouteOption) {
	cfg := &routeConfig{createOverrides: map[string]http.HandlerFunc{}}
	for _, o := range opts {
		o(cfg)
	}

	for _, e := range catalog.All() {
		names := append([]string{e.Name}, e.Aliases...)
		for _, name := range names {
			create := createHandler(svc, log, name)
			if h, ok := cfg.createOverrides[e.Name]; ok {
				create = h
			}

			r.Route("/"+name, func(er chi.Router) {
				er.Get("/", listHandler(svc, log, name))
				er.Post("/", create)
				er.Put("/{id}", updateHandler(svc, log, name))
				er.Delete("/{id}", deleteHandler(svc, log, name))
			})
		}
	}
}

func listHandler(svc *Service, log *zap.Logger, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), name)
		if err != nil {
			respondError(w, log, name, "list", err, msgInternal)
			return
		}
		WriteJSON(w, http.StatusOK, rows)
	}
}

func createHandler(svc *Service, log *zap.Logger, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}
		out, err := svc.Create(r.Context(), name, body)
		if err != nil {
			respondError(w, log, name, "create", err, msgInternal)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	}
}

func updateHandler(svc *Service, log *zap.Logger, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, errResolve := svc.Resolve(name)

		id, okID := parseID(r)
		if !okID {
			// Un id no numérico no matchea ninguna fila: mismo 404 que
			// un id inexistente.
			notFound(w, e, errResolve)
			return
		}

		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		e, err := svc.Update(r.Context(), name, id, body)
		if err != nil {
			respondError(w, log, name, "update", err, e.NotFoundMessage())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": e.UpdatedMessage()})
	}
}

func deleteHandler(svc *Service, log *zap.Logger, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, errResolve := svc.Resolve(name)

		id, okID := parseID(r)
		if !okID {
			notFound(w, e, errResolve)
			return
		}

		e, err := svc.Delete(r.Context(), name, id)
		if err != nil {
			respondError(w, log, name, "delete", err, e.NotFoundMessage())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": e.DeletedMessage()})
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return nil, false
	}
	return body, true
}

func notFound(w http.ResponseWriter, e catalog.Entity, errResolve error) {
	msg := "Registro no encontrado"
	if errResolve == nil {
		msg = e.NotFoundMessage()
	}
	WriteError(w, http.StatusNotFound, msg)
}

// respondError traduce errores de dominio/repositorio a la taxonomía HTTP:
// 400 validación, 404 no encontrado, 409 integridad, 500 el resto. Todo
// queda logueado con entidad y operación; el cuerpo al cliente es opaco.
func respondError(w http.ResponseWriter, log *zap.Logger, entity, op string, err error, notFoundMsg string) {
	fields := []zap.Field{
		zap.String("entidad", entity),
		zap.String("operacion", op),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, ErrMissingFields):
		log.Warn("validación fallida", fields...)
		WriteError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, ErrNotFound):
		log.Warn("registro no encontrado", fields...)
		WriteError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, ErrConflict):
		log.Warn("violación de integridad", fields...)
		WriteError(w, http.StatusConflict, msgConflict)
	default:
		log.Error("operación fallida", fields...)
		WriteError(w, http.StatusInternalServerError, msgInternal)
	}
}

// WriteJSON serializa una respuesta. Compartido con los handlers de auth y
// facturación, que hablan el mismo contrato.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError serializa el cuerpo de error {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
