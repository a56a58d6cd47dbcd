package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wapoki-api/internal/domain/invoices"
)

// InvoicesRepo inserta factura y detalles en una sola transacción: si un
// renglón falla (ej. servicio inexistente), la cabecera también se
// revierte.
type InvoicesRepo struct {
	db *sqlx.DB
}

func NewInvoicesRepo(db *sqlx.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

func (r *InvoicesRepo) CreateWithItems(ctx context.Context, inv invoices.Invoice, items []invoices.LineItem) (invoices.Created, error) {
	insertInvoice := r.db.Rebind(`
		INSERT INTO facturas (fecha_emision, total, metodo_pago, id_cliente)
		VALUES (?, ?, ?, ?)
		RETURNING id_factura`)
	insertItem := r.db.Rebind(`
		INSERT INTO detalles_facturas (id_factura, id_servicio, cantidad, subtotal)
		VALUES (?, ?, ?, ?)
		RETURNING id_detalle`)

	var created invoices.Created
	err := runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		row := tx.QueryRowxContext(ctx, insertInvoice,
			inv.FechaEmision, inv.Total, inv.MetodoPago, inv.IDCliente)
		if err := row.Scan(&created.ID); err != nil {
			return classify(fmt.Errorf("create factura: %w", err))
		}

		created.ItemIDs = make([]int64, 0, len(items))
		for _, it := range items {
			var itemID int64
			row := tx.QueryRowxContext(ctx, insertItem,
				created.ID, it.IDServicio, it.Cantidad, it.Subtotal)
			if err := row.Scan(&itemID); err != nil {
				return classify(fmt.Errorf("create detalle: %w", err))
			}
			created.ItemIDs = append(created.ItemIDs, itemID)
		}
		return nil
	})
	if err != nil {
		return invoices.Created{}, err
	}
	return created, nil
}
