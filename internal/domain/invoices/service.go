package invoices

import (
	"context"
	"fmt"

	"wapoki-api/internal/domain/catalog"
	"wapoki-api/internal/domain/crud"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create valida la cabecera con el contrato de facturas del catálogo y los
// renglones con el de detalles_facturas (sin id_factura, que recién existe
// dentro de la transacción). Si no viene total y hay detalles, el total es
// la suma de subtotales; un total explícito gana.
func (s *Service) Create(ctx context.Context, body map[string]any) (map[string]any, error) {
	facturas, _ := catalog.Get("facturas")

	values, err := crud.BindRecord(facturas, body)
	if err != nil {
		return nil, err
	}

	inv := Invoice{
		FechaEmision: asString(valueOf(facturas, values, "fecha_emision")),
		MetodoPago:   asString(valueOf(facturas, values, "metodo_pago")),
	}
	if id, ok := valueOf(facturas, values, "id_cliente").(int64); ok {
		inv.IDCliente = id
	}

	items, err := bindItems(body)
	if err != nil {
		return nil, err
	}

	total, hasTotal := valueOf(facturas, values, "total").(float64)
	if !hasTotal {
		for _, it := range items {
			total += it.Subtotal
		}
	}
	inv.Total = total

	created, err := s.repo.CreateWithItems(ctx, inv, items)
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"id_factura":    created.ID,
		"fecha_emision": inv.FechaEmision,
		"total":         inv.Total,
		"metodo_pago":   inv.MetodoPago,
		"id_cliente":    inv.IDCliente,
	}
	if len(items) > 0 {
		detalles := make([]map[string]any, 0, len(items))
		for i, it := range items {
			detalles = append(detalles, map[string]any{
				"id_detalle":  created.ItemIDs[i],
				"id_factura":  created.ID,
				"id_servicio": it.IDServicio,
				"cantidad":    it.Cantidad,
				"subtotal":    it.Subtotal,
			})
		}
		out["detalles"] = detalles
	}
	return out, nil
}

// itemContract es el contrato de un renglón entrante: el de
// detalles_facturas sin la FK a la factura todavía inexistente.
func itemContract() catalog.Entity {
	e, _ := catalog.Get("detalles_facturas")
	fields := make([]catalog.Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "id_factura" {
			continue
		}
		fields = append(fields, f)
	}
	e.Fields = fields
	return e
}

func bindItems(body map[string]any) ([]LineItem, error) {
	raw, ok := body["detalles"]
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: detalles", crud.ErrMissingFields)
	}

	contract := itemContract()
	items := make([]LineItem, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: detalles", crud.ErrMissingFields)
		}
		values, err := crud.BindRecord(contract, m)
		if err != nil {
			return nil, err
		}

		var it LineItem
		if id, ok := valueOf(contract, values, "id_servicio").(int64); ok {
			it.IDServicio = id
		}
		if n, ok := valueOf(contract, values, "cantidad").(float64); ok {
			it.Cantidad = n
		}
		if n, ok := valueOf(contract, values, "subtotal").(float64); ok {
			it.Subtotal = n
		}
		items = append(items, it)
	}
	return items, nil
}

// valueOf busca el valor ligado de un campo por nombre (los values vienen
// en el orden de campos del catálogo).
func valueOf(e catalog.Entity, values []any, name string) any {
	for i, f := range e.Fields {
		if f.Name == name {
			return values[i]
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
