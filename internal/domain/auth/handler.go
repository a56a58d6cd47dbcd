package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wapoki-api/internal/domain/crud"
)

const msgInvalidCredentials = "Credenciales inválidas"

// RegisterRoutes monta los endpoints especiales de identidad:
//   - POST /ingreso  — login contra usuarios
//   - POST /registro — auto-registro; espeja el create de /api/usuarios
//     (mismo hook de hash, mismo contrato 201/400)
func RegisterRoutes(r chi.Router, svc *Service, crudSvc *crud.Service, log *zap.Logger) {
	r.Post("/ingreso", loginHandler(svc, log))
	r.Post("/registro", registerHandler(crudSvc, log))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			crud.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}

		id, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				// Cuerpo idéntico para usuario inexistente y password
				// errónea.
				log.Warn("ingreso rechazado",
					zap.String("entidad", "usuarios"),
					zap.String("operacion", "ingreso"))
				crud.WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
				return
			}
			log.Error("ingreso fallido",
				zap.String("entidad", "usuarios"),
				zap.String("operacion", "ingreso"),
				zap.Error(err))
			crud.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}

		crud.WriteJSON(w, http.StatusOK, id)
	}
}

func registerHandler(crudSvc *crud.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			crud.WriteError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		// Rol fijo para auto-registro; el alta con rol libre es del CRUD
		// de usuarios.
		if _, ok := body["rol"]; !ok {
			body["rol"] = "cliente"
		}

		out, err := crudSvc.Create(r.Context(), "usuarios", body)
		if err != nil {
			switch {
			case errors.Is(err, crud.ErrMissingFields):
				crud.WriteError(w, http.StatusBadRequest, "Todos los campos son requeridos")
			case errors.Is(err, crud.ErrConflict):
				crud.WriteError(w, http.StatusConflict, "El usuario ya existe")
			default:
				log.Error("registro fallido",
					zap.String("entidad", "usuarios"),
					zap.String("operacion", "registro"),
					zap.Error(err))
				crud.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
			}
			return
		}

		crud.WriteJSON(w, http.StatusCreated, out)
	}
}
