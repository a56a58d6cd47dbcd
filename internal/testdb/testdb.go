// Package testdb arma una base sqlite en memoria con el esquema de la
// clínica para los tests de repositorios y handlers. Los statements del
// catálogo son portables (placeholders `?`, concatenación con ||,
// RETURNING), así que corren igual acá que en Postgres.
package testdb

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE localidades (
    id_localidad INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL
);

CREATE TABLE barrios (
    id_barrio INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    id_localidad INTEGER REFERENCES localidades (id_localidad)
);

CREATE TABLE clientes (
    id_cliente INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    telefono TEXT,
    email TEXT,
    direccion TEXT,
    id_barrio INTEGER REFERENCES barrios (id_barrio)
);

CREATE TABLE mascotas (
    id_mascota INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    especie TEXT NOT NULL,
    raza TEXT,
    edad NUMERIC,
    peso NUMERIC,
    id_cliente INTEGER NOT NULL REFERENCES clientes (id_cliente)
);

CREATE TABLE usuarios (
    id_usuario INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    email TEXT,
    telefono TEXT,
    rol TEXT NOT NULL
);

CREATE TABLE veterinarios (
    id_veterinario INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    especialidad TEXT,
    telefono TEXT,
    email TEXT,
    id_usuario INTEGER REFERENCES usuarios (id_usuario)
);

CREATE TABLE servicios (
    id_servicio INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    descripcion TEXT,
    precio NUMERIC NOT NULL DEFAULT 0
);

CREATE TABLE enfermedades (
    id_enfermedad INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    descripcion TEXT
);

CREATE TABLE enfermedades_mascotas (
    id_enfermedad_mascota INTEGER PRIMARY KEY AUTOINCREMENT,
    id_mascota INTEGER NOT NULL REFERENCES mascotas (id_mascota),
    id_enfermedad INTEGER NOT NULL REFERENCES enfermedades (id_enfermedad),
    fecha_diagnostico TEXT
);

CREATE TABLE citas (
    id_cita INTEGER PRIMARY KEY AUTOINCREMENT,
    fecha TEXT NOT NULL,
    hora TEXT NOT NULL,
    id_mascota INTEGER NOT NULL REFERENCES mascotas (id_mascota),
    id_veterinario INTEGER NOT NULL REFERENCES veterinarios (id_veterinario),
    motivo TEXT
);

CREATE TABLE tratamientos (
    id_tratamiento INTEGER PRIMARY KEY AUTOINCREMENT,
    descripcion TEXT NOT NULL,
    medicamento TEXT,
    dosis TEXT,
    id_cita INTEGER NOT NULL REFERENCES citas (id_cita)
);

CREATE TABLE facturas (
    id_factura INTEGER PRIMARY KEY AUTOINCREMENT,
    fecha_emision TEXT NOT NULL,
    total NUMERIC NOT NULL DEFAULT 0,
    metodo_pago TEXT NOT NULL,
    id_cliente INTEGER NOT NULL REFERENCES clientes (id_cliente)
);

CREATE TABLE detalles_facturas (
    id_detalle INTEGER PRIMARY KEY AUTOINCREMENT,
    id_factura INTEGER NOT NULL REFERENCES facturas (id_factura),
    id_servicio INTEGER NOT NULL REFERENCES servicios (id_servicio),
    cantidad NUMERIC NOT NULL,
    subtotal NUMERIC NOT NULL
);
`

// New abre una base en memoria con el esquema aplicado y foreign keys
// activas. Una sola conexión: en sqlite cada conexión en memoria es una
// base distinta.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err = db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return db
}
