// Package catalog define el esquema de la clínica: cada tabla, su clave
// primaria, sus campos escribibles y la consulta de lectura con los joins
// que resuelven claves foráneas a etiquetas legibles. Los demás componentes
// (validación, repositorio genérico, rutas) consumen esta tabla en lugar de
// repetir listas de campos por endpoint.
package catalog

import (
	"fmt"
	"strings"
)

// Kind clasifica cómo se valida y se liga un campo escribible.
type Kind int

const (
	// Text se valida por presencia no vacía.
	Text Kind = iota
	// Numeric acepta números JSON o strings numéricos; cero es válido.
	Numeric
	// ForeignKey se coacciona a entero antes de ligar al statement.
	ForeignKey
)

// Field es una columna escribible de una entidad.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Secret nunca se devuelve en respuestas (password de usuarios).
	Secret bool
}

// Entity describe una tabla y su contrato HTTP/SQL.
type Entity struct {
	// Name es el segmento de ruta: /api/<Name>.
	Name string
	// Aliases son rutas alternativas que resuelven a la misma entidad
	// (compatibilidad con clientes viejos, ej. facturacion → facturas).
	Aliases []string
	Table   string
	PK      string
	// Label y Feminine arman los mensajes en español con concordancia
	// ("Mascota actualizada", "Cliente eliminado").
	Label    string
	Feminine bool
	Fields   []Field
	// ListQuery es la lectura fija de la entidad: proyección completa más
	// joins que reemplazan FKs por nombres. Placeholders no hay; el orden
	// lo fija la propia consulta.
	ListQuery string
}

// FieldNames devuelve los nombres de columna escribibles, en orden.
func (e Entity) FieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Name)
	}
	return out
}

// InsertSQL arma el INSERT fijo de la entidad. Usa placeholders `?`;
// el repositorio los reescribe según el driver (Rebind).
func (e Entity) InsertSQL() string {
	cols := e.FieldNames()
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		e.Table, strings.Join(cols, ", "), marks, e.PK,
	)
}

// UpdateSQL arma el UPDATE de registro completo por clave primaria.
func (e Entity) UpdateSQL() string {
	sets := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		sets = append(sets, f.Name+" = ?")
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ?",
		e.Table, strings.Join(sets, ", "), e.PK,
	)
}

// DeleteSQL arma el DELETE por clave primaria.
func (e Entity) DeleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", e.Table, e.PK)
}

func (e Entity) suffix(masc, fem string) string {
	if e.Feminine {
		return fem
	}
	return masc
}

// UpdatedMessage es el cuerpo de éxito de un PUT.
func (e Entity) UpdatedMessage() string {
	return e.Label + " actualizad" + e.suffix("o", "a") + " correctamente"
}

// DeletedMessage es el cuerpo de éxito de un DELETE.
func (e Entity) DeletedMessage() string {
	return e.Label + " eliminad" + e.suffix("o", "a") + " correctamente"
}

// NotFoundMessage es el cuerpo 404 de PUT/DELETE sobre id inexistente.
func (e Entity) NotFoundMessage() string {
	return e.Label + " no encontrad" + e.suffix("o", "a")
}

// All devuelve las entidades en orden de registro.
func All() []Entity {
	return entities
}

// Get resuelve una entidad por nombre de ruta o alias.
func Get(name string) (Entity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
		for _, a := range e.Aliases {
			if a == name {
				return e, true
			}
		}
	}
	return Entity{}, false
}

var entities = []Entity{
	{
		Name:     "localidades",
		Table:    "localidades",
		PK:       "id_localidad",
		Label:    "Localidad",
		Feminine: true,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
		},
		ListQuery: `
			SELECT id_localidad, nombre
			FROM localidades`,
	},
	{
		Name:     "barrios",
		Table:    "barrios",
		PK:       "id_barrio",
		Label:    "Barrio",
		Feminine: false,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "id_localidad", Kind: ForeignKey, Required: true},
		},
		ListQuery: `
			SELECT b.id_barrio, b.nombre, b.id_localidad,
			       l.nombre AS nombre_localidad
			FROM barrios b
			LEFT JOIN localidades l ON b.id_localidad = l.id_localidad
			ORDER BY b.id_barrio DESC`,
	},
	{
		Name:     "clientes",
		Table:    "clientes",
		PK:       "id_cliente",
		Label:    "Cliente",
		Feminine: false,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "apellido", Kind: Text, Required: true},
			{Name: "telefono", Kind: Text, Required: true},
			{Name: "email", Kind: Text, Required: true},
			{Name: "direccion", Kind: Text, Required: true},
			{Name: "id_barrio", Kind: ForeignKey, Required: true},
		},
		ListQuery: `
			SELECT c.id_cliente, c.nombre, c.apellido, c.telefono, c.email,
			       c.direccion, c.id_barrio,
			       b.nombre AS nombre_barrio
			FROM clientes c
			LEFT JOIN barrios b ON c.id_barrio = b.id_barrio
			ORDER BY c.id_cliente DESC`,
	},
	{
		Name:     "mascotas",
		Table:    "mascotas",
		PK:       "id_mascota",
		Label:    "Mascota",
		Feminine: true,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "especie", Kind: Text, Required: true},
			{Name: "raza", Kind: Text, Required: true},
			{Name: "edad", Kind: Numeric, Required: true},
			{Name: "peso", Kind: Numeric, Required: true},
			{Name: "id_cliente", Kind: ForeignKey, Required: true},
		},
		// JOIN interno: una mascota sin dueño no existe.
		ListQuery: `
			SELECT m.id_mascota, m.nombre, m.especie, m.raza, m.edad, m.peso,
			       m.id_cliente,
			       c.nombre || ' ' || c.apellido AS nombre_cliente
			FROM mascotas m
			JOIN clientes c ON m.id_cliente = c.id_cliente
			ORDER BY m.id_mascota DESC`,
	},
	{
		Name:     "usuarios",
		Table:    "usuarios",
		PK:       "id_usuario",
		Label:    "Usuario",
		Feminine: false,
		Fields: []Field{
			{Name: "username", Kind: Text, Required: true},
			{Name: "password", Kind: Text, Required: true, Secret: true},
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "apellido", Kind: Text, Required: true},
			{Name: "email", Kind: Text},
			{Name: "telefono", Kind: Text},
			{Name: "rol", Kind: Text, Required: true},
		},
		// La proyección jamás incluye password.
		ListQuery: `
			SELECT id_usuario, username, nombre, apellido, email, telefono, rol
			FROM usuarios
			ORDER BY id_usuario DESC`,
	},
	{
		Name:     "veterinarios",
		Table:    "veterinarios",
		PK:       "id_veterinario",
		Label:    "Veterinario",
		Feminine: false,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "apellido", Kind: Text, Required: true},
			{Name: "especialidad", Kind: Text, Required: true},
			{Name: "telefono", Kind: Text, Required: true},
			{Name: "email", Kind: Text, Required: true},
			// Identidad de login opcional.
			{Name: "id_usuario", Kind: ForeignKey},
		},
		ListQuery: `
			SELECT v.id_veterinario, v.nombre, v.apellido, v.especialidad,
			       v.telefono, v.email, v.id_usuario,
			       u.username AS usuario
			FROM veterinarios v
			LEFT JOIN usuarios u ON v.id_usuario = u.id_usuario
			ORDER BY v.id_veterinario DESC`,
	},
	{
		Name:     "servicios",
		Table:    "servicios",
		PK:       "id_servicio",
		Label:    "Servicio",
		Feminine: false,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "descripcion", Kind: Text},
			// Required con cero válido: un servicio puede costar 0.
			{Name: "precio", Kind: Numeric, Required: true},
		},
		ListQuery: `
			SELECT id_servicio, nombre, descripcion, precio
			FROM servicios`,
	},
	{
		Name:     "enfermedades",
		Table:    "enfermedades",
		PK:       "id_enfermedad",
		Label:    "Enfermedad",
		Feminine: true,
		Fields: []Field{
			{Name: "nombre", Kind: Text, Required: true},
			{Name: "descripcion", Kind: Text},
		},
		ListQuery: `
			SELECT id_enfermedad, nombre, descripcion
			FROM enfermedades`,
	},
	{
		Name:     "enfermedades_mascotas",
		Table:    "enfermedades_mascotas",
		PK:       "id_enfermedad_mascota",
		Label:    "Diagnóstico",
		Feminine: false,
		Fields: []Field{
			{Name: "id_mascota", Kind: ForeignKey, Required: true},
			{Name: "id_enfermedad", Kind: ForeignKey, Required: true},
			{Name: "fecha_diagnostico", Kind: Text, Required: true},
		},
		ListQuery: `
			SELECT em.id_enfermedad_mascota, em.id_mascota, em.id_enfermedad,
			       em.fecha_diagnostico,
			       m.nombre AS nombre_mascota,
			       e.nombre AS nombre_enfermedad
			FROM enfermedades_mascotas em
			LEFT JOIN mascotas m ON em.id_mascota = m.id_mascota
			LEFT JOIN enfermedades e ON em.id_enfermedad = e.id_enfermedad
			ORDER BY em.id_enfermedad_mascota DESC`,
	},
	{
		Name:     "citas",
		Table:    "citas",
		PK:       "id_cita",
		Label:    "Cita",
		Feminine: true,
		Fields: []Field{
			{Name: "fecha", Kind: Text, Required: true},
			{Name: "hora", Kind: Text, Required: true},
			{Name: "id_mascota", Kind: ForeignKey, Required: true},
			{Name: "id_veterinario", Kind: ForeignKey, Required: true},
			{Name: "motivo", Kind: Text, Required: true},
		},
		ListQuery: `
			SELECT ci.id_cita, ci.fecha, ci.hora, ci.id_mascota,
			       ci.id_veterinario, ci.motivo,
			       m.nombre AS nombre_mascota,
			       v.nombre || ' ' || v.apellido AS nombre_veterinario
			FROM citas ci
			LEFT JOIN mascotas m ON ci.id_mascota = m.id_mascota
			LEFT JOIN veterinarios v ON ci.id_veterinario = v.id_veterinario
			ORDER BY ci.id_cita DESC`,
	},
	{
		Name:     "tratamientos",
		Table:    "tratamientos",
		PK:       "id_tratamiento",
		Label:    "Tratamiento",
		Feminine: false,
		Fields: []Field{
			{Name: "descripcion", Kind: Text, Required: true},
			{Name: "medicamento", Kind: Text, Required: true},
			{Name: "dosis", Kind: Text, Required: true},
			{Name: "id_cita", Kind: ForeignKey, Required: true},
		},
		ListQuery: `
			SELECT t.id_tratamiento, t.descripcion, t.medicamento, t.dosis,
			       t.id_cita,
			       ci.fecha AS fecha_cita
			FROM tratamientos t
			LEFT JOIN citas ci ON t.id_cita = ci.id_cita
			ORDER BY t.id_tratamiento DESC`,
	},
	{
		Name:     "facturas",
		Aliases:  []string{"facturacion"},
		Table:    "facturas",
		PK:       "id_factura",
		Label:    "Factura",
		Feminine: true,
		Fields: []Field{
			{Name: "fecha_emision", Kind: Text, Required: true},
			// Opcional: si vienen detalles sin total, se calcula.
			{Name: "total", Kind: Numeric},
			{Name: "metodo_pago", Kind: Text, Required: true},
			{Name: "id_cliente", Kind: ForeignKey, Required: true},
		},
		ListQuery: `
			SELECT f.id_factura, f.fecha_emision, f.total, f.metodo_pago,
			       f.id_cliente,
			       c.nombre || ' ' || c.apellido AS nombre_cliente
			FROM facturas f
			LEFT JOIN clientes c ON f.id_cliente = c.id_cliente
			ORDER BY f.id_factura DESC`,
	},
	{
		Name:     "detalles_facturas",
		Table:    "detalles_facturas",
		PK:       "id_detalle",
		Label:    "Detalle de factura",
		Feminine: false,
		Fields: []Field{
			{Name: "id_factura", Kind: ForeignKey, Required: true},
			{Name: "id_servicio", Kind: ForeignKey, Required: true},
			{Name: "cantidad", Kind: Numeric, Required: true},
			{Name: "subtotal", Kind: Numeric, Required: true},
		},
		ListQuery: `
			SELECT d.id_detalle, d.id_factura, d.id_servicio, d.cantidad,
			       d.subtotal,
			       s.nombre AS nombre_servicio
			FROM detalles_facturas d
			LEFT JOIN servicios s ON d.id_servicio = s.id_servicio
			ORDER BY d.id_detalle DESC`,
	},
}
