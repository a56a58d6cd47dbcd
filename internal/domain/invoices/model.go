package invoices

import "context"

// Invoice es la cabecera de facturación canónica (tabla facturas,
// FK id_cliente; el alias de ruta facturacion resuelve acá).
type Invoice struct {
	FechaEmision string
	Total        float64
	MetodoPago   string
	IDCliente    int64
}

// LineItem es un renglón de la factura: un servicio facturado con su
// cantidad y subtotal.
type LineItem struct {
	IDServicio int64
	Cantidad   float64
	Subtotal   float64
}

// Created devuelve las claves generadas dentro de la transacción.
type Created struct {
	ID      int64
	ItemIDs []int64
}

// Repository persiste cabecera y renglones de forma atómica: cualquier
// fallo revierte la factura completa, nunca queda una cabecera huérfana.
type Repository interface {
	CreateWithItems(ctx context.Context, inv Invoice, items []LineItem) (Created, error)
}
