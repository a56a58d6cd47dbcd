package crud

import "errors"

var (
	// ErrMissingFields agrupa todos los campos requeridos ausentes en una
	// sola condición; el detalle por campo queda en el log, no en el 400.
	ErrMissingFields = errors.New("campos requeridos faltantes")

	// ErrNotFound lo devuelve el repositorio cuando un UPDATE/DELETE no
	// afecta filas. No es un fallo de escritura: es un 404.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrConflict marca violaciones de integridad (FK inexistente,
	// único duplicado) clasificadas por el adaptador de storage.
	ErrConflict = errors.New("conflicto con datos relacionados")

	// ErrUnknownEntity marca una ruta que no figura en el catálogo.
	ErrUnknownEntity = errors.New("entidad desconocida")
)
