package crud

import (
	"context"

	"wapoki-api/internal/domain/catalog"
)

// Repository ejecuta los statements fijos del catálogo. Una request usa una
// conexión del pool para exactamente un statement (o una lectura con joins).
type Repository interface {
	// List ejecuta la consulta de lectura y devuelve filas planas.
	List(ctx context.Context, e catalog.Entity) ([]map[string]any, error)

	// Create inserta values (en orden de catálogo) y devuelve la clave
	// primaria generada por la base.
	Create(ctx context.Context, e catalog.Entity, values []any) (int64, error)

	// Update reemplaza el registro completo; cero filas afectadas es
	// ErrNotFound, no un error de escritura.
	Update(ctx context.Context, e catalog.Entity, id int64, values []any) error

	// Delete borra por clave primaria; cero filas afectadas es ErrNotFound.
	Delete(ctx context.Context, e catalog.Entity, id int64) error
}
