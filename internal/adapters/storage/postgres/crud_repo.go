package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"wapoki-api/internal/domain/catalog"
	"wapoki-api/internal/domain/crud"
)

// CRUDRepo ejecuta los statements fijos del catálogo para cualquier
// entidad. Un statement por operación; la integridad referencial la
// garantiza la base, acá solo se clasifica el error resultante.
type CRUDRepo struct {
	db *sqlx.DB
}

func NewCRUDRepo(db *sqlx.DB) *CRUDRepo {
	return &CRUDRepo{db: db}
}

func (r *CRUDRepo) List(ctx context.Context, e catalog.Entity) ([]map[string]any, error) {
	rows, err := r.db.QueryxContext(ctx, e.ListQuery)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", e.Name, err)
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("list %s: %w", e.Name, err)
		}
		normalizeRow(m)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *CRUDRepo) Create(ctx context.Context, e catalog.Entity, values []any) (int64, error) {
	q := r.db.Rebind(e.InsertSQL())

	var id int64
	if err := r.db.QueryRowxContext(ctx, q, values...).Scan(&id); err != nil {
		return 0, classify(fmt.Errorf("create %s: %w", e.Name, err))
	}
	return id, nil
}

func (r *CRUDRepo) Update(ctx context.Context, e catalog.Entity, id int64, values []any) error {
	q := r.db.Rebind(e.UpdateSQL())

	res, err := r.db.ExecContext(ctx, q, append(values, id)...)
	if err != nil {
		return classify(fmt.Errorf("update %s: %w", e.Name, err))
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return crud.ErrNotFound
	}
	return nil
}

func (r *CRUDRepo) Delete(ctx context.Context, e catalog.Entity, id int64) error {
	q := r.db.Rebind(e.DeleteSQL())

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return classify(fmt.Errorf("delete %s: %w", e.Name, err))
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return crud.ErrNotFound
	}
	return nil
}

// classify separa las violaciones de integridad (FK inexistente, único
// duplicado) del resto: suben como ErrConflict (409) en vez del 500
// genérico. Clase 23 = integrity constraint violation en Postgres.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%w: %v", crud.ErrConflict, err)
	}
	// sqlite (tests) reporta las violaciones como texto de constraint.
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return fmt.Errorf("%w: %v", crud.ErrConflict, err)
	}
	return err
}

// normalizeRow empareja tipos entre drivers: columnas de texto pueden
// llegar como []byte según el driver.
func normalizeRow(m map[string]any) {
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			m[k] = string(b)
		}
	}
}
