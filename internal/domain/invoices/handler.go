package invoices

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"wapoki-api/internal/domain/crud"
)

// CreateHandler reemplaza el POST genérico de /api/facturas (y su alias
// facturacion): cabecera y detalles entran juntos y se persisten en una
// sola transacción.
func CreateHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			crud.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		out, err := svc.Create(r.Context(), body)
		if err != nil {
			fields := []zap.Field{
				zap.String("entidad", "facturas"),
				zap.String("operacion", "create"),
				zap.Error(err),
			}
			switch {
			case errors.Is(err, crud.ErrMissingFields):
				log.Warn("validación fallida", fields...)
				crud.WriteError(w, http.StatusBadRequest, "Todos los campos son requeridos")
			case errors.Is(err, crud.ErrConflict):
				log.Warn("violación de integridad", fields...)
				crud.WriteError(w, http.StatusConflict, "Conflicto con datos relacionados")
			default:
				log.Error("operación fallida", fields...)
				crud.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
			}
			return
		}

		crud.WriteJSON(w, http.StatusCreated, out)
	}
}
