package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wapoki-api/internal/platform/metrics"
	"wapoki-api/internal/testdb"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return New(Options{DB: testdb.New(t), Metrics: metrics.New()})
}

func doReq(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	return l
}

// seedCliente arma por API la cadena localidad → barrio → cliente y
// devuelve el id del cliente.
func seedCliente(t *testing.T, h http.Handler) float64 {
	t.Helper()

	rec := doReq(t, h, http.MethodPost, "/api/localidades", map[string]any{"nombre": "Centro"})
	require.Equal(t, http.StatusCreated, rec.Code)
	locID := decodeMap(t, rec)["id_localidad"]

	rec = doReq(t, h, http.MethodPost, "/api/barrios", map[string]any{
		"nombre":       "El Bosque",
		"id_localidad": locID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	barrioID := decodeMap(t, rec)["id_barrio"]

	rec = doReq(t, h, http.MethodPost, "/api/clientes", map[string]any{
		"nombre":    "Juan",
		"apellido":  "Pérez",
		"telefono":  "5551234",
		"email":     "juan@wapoki.local",
		"direccion": "Calle 1",
		"id_barrio": barrioID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeMap(t, rec)["id_cliente"].(float64)
}

func seedMascota(t *testing.T, h http.Handler, clienteID float64) float64 {
	t.Helper()
	rec := doReq(t, h, http.MethodPost, "/api/mascotas", map[string]any{
		"nombre":     "Rex",
		"especie":    "perro",
		"raza":       "labrador",
		"edad":       3,
		"peso":       12.5,
		"id_cliente": clienteID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeMap(t, rec)["id_mascota"].(float64)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)
	rec := doReq(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostConCamposFaltantesNoMuta(t *testing.T) {
	h := newTestRouter(t)

	rec := doReq(t, h, http.MethodPost, "/api/clientes", map[string]any{"nombre": "Juan"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Todos los campos son requeridos", decodeMap(t, rec)["error"])

	// Ninguna mutación llegó a la base.
	rec = doReq(t, h, http.MethodGet, "/api/clientes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeList(t, rec))
}

func TestPutYDeleteInexistentes(t *testing.T) {
	h := newTestRouter(t)

	rec := doReq(t, h, http.MethodPut, "/api/localidades/999", map[string]any{"nombre": "Norte"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Localidad no encontrada", decodeMap(t, rec)["error"])

	rec = doReq(t, h, http.MethodDelete, "/api/localidades/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// El conjunto de datos quedó intacto.
	rec = doReq(t, h, http.MethodGet, "/api/localidades", nil)
	assert.Empty(t, decodeList(t, rec))
}

func TestRoundTripClientes(t *testing.T) {
	h := newTestRouter(t)
	clienteID := seedCliente(t, h)

	rec := doReq(t, h, http.MethodGet, "/api/clientes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeList(t, rec)
	require.Len(t, rows, 1)

	assert.Equal(t, clienteID, rows[0]["id_cliente"])
	assert.Equal(t, "Juan", rows[0]["nombre"])
	assert.Equal(t, "Pérez", rows[0]["apellido"])
	assert.Equal(t, "El Bosque", rows[0]["nombre_barrio"])
}

func TestDeleteMascotaNuncaBorraDosVeces(t *testing.T) {
	h := newTestRouter(t)
	mascotaID := seedMascota(t, h, seedCliente(t, h))

	path := "/api/mascotas/" + jsonNumber(mascotaID)

	rec := doReq(t, h, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mascota eliminada correctamente", decodeMap(t, rec)["message"])

	// Repetir el DELETE da 404 las veces que haga falta.
	for i := 0; i < 2; i++ {
		rec = doReq(t, h, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Mascota no encontrada", decodeMap(t, rec)["error"])
	}
}

func TestPutMascota(t *testing.T) {
	h := newTestRouter(t)
	clienteID := seedCliente(t, h)
	mascotaID := seedMascota(t, h, clienteID)

	rec := doReq(t, h, http.MethodPut, "/api/mascotas/"+jsonNumber(mascotaID), map[string]any{
		"nombre":     "Rex II",
		"especie":    "perro",
		"raza":       "labrador",
		"edad":       4,
		"peso":       14,
		"id_cliente": clienteID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mascota actualizada correctamente", decodeMap(t, rec)["message"])

	rec = doReq(t, h, http.MethodGet, "/api/mascotas", nil)
	rows := decodeList(t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rex II", rows[0]["nombre"])
}

func TestEscenarioCompletoMascotaConDueno(t *testing.T) {
	// Localidad "Centro" → barrio "El Bosque" → cliente → mascota "Rex":
	// el GET de mascotas resuelve nombre_cliente concatenado.
	h := newTestRouter(t)
	seedMascota(t, h, seedCliente(t, h))

	rec := doReq(t, h, http.MethodGet, "/api/mascotas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeList(t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rex", rows[0]["nombre"])
	assert.Equal(t, "Juan Pérez", rows[0]["nombre_cliente"])
}

func TestFKInexistenteEsConflicto(t *testing.T) {
	h := newTestRouter(t)

	rec := doReq(t, h, http.MethodPost, "/api/mascotas", map[string]any{
		"nombre":     "Rex",
		"especie":    "perro",
		"raza":       "labrador",
		"edad":       3,
		"peso":       12.5,
		"id_cliente": 999,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Conflicto con datos relacionados", decodeMap(t, rec)["error"])
}

func TestRegistroEIngreso(t *testing.T) {
	h := newTestRouter(t)

	rec := doReq(t, h, http.MethodPost, "/api/registro", map[string]any{
		"username": "tatiana",
		"password": "secreta123",
		"nombre":   "Tatiana",
		"apellido": "López",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeMap(t, rec)
	assert.NotContains(t, out, "password")
	assert.NotZero(t, out["id_usuario"])

	rec = doReq(t, h, http.MethodPost, "/api/ingreso", map[string]any{
		"username": "tatiana",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeMap(t, rec)
	assert.Equal(t, "tatiana", id["username"])
	assert.Equal(t, "cliente", id["rol"])
	assert.NotContains(t, id, "password")
}

func TestIngresoNoFiltraCualCampoFallo(t *testing.T) {
	h := newTestRouter(t)
	doReq(t, h, http.MethodPost, "/api/registro", map[string]any{
		"username": "tatiana",
		"password": "secreta123",
		"nombre":   "Tatiana",
		"apellido": "López",
	})

	wrongPass := doReq(t, h, http.MethodPost, "/api/ingreso", map[string]any{
		"username": "tatiana",
		"password": "otra",
	})
	noUser := doReq(t, h, http.MethodPost, "/api/ingreso", map[string]any{
		"username": "nadie",
		"password": "secreta123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.Equal(t, wrongPass.Body.String(), noUser.Body.String())
}

func TestFacturaConDetallesYAlias(t *testing.T) {
	h := newTestRouter(t)
	clienteID := seedCliente(t, h)

	rec := doReq(t, h, http.MethodPost, "/api/servicios", map[string]any{
		"nombre": "Consulta",
		"precio": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	servicioID := decodeMap(t, rec)["id_servicio"]

	// Por el alias viejo, sin total: se calcula de los subtotales.
	rec = doReq(t, h, http.MethodPost, "/api/facturacion", map[string]any{
		"fecha_emision": "2026-01-10",
		"metodo_pago":   "efectivo",
		"id_cliente":    clienteID,
		"detalles": []map[string]any{
			{"id_servicio": servicioID, "cantidad": 2, "subtotal": 200},
			{"id_servicio": servicioID, "cantidad": 1, "subtotal": 100},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeMap(t, rec)
	assert.Equal(t, float64(300), out["total"])
	require.Len(t, out["detalles"], 2)

	rec = doReq(t, h, http.MethodGet, "/api/facturas", nil)
	rows := decodeList(t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Juan Pérez", rows[0]["nombre_cliente"])

	rec = doReq(t, h, http.MethodGet, "/api/detalles_facturas", nil)
	assert.Len(t, decodeList(t, rec), 2)
}

func TestJSONInvalido(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsExpuesto(t *testing.T) {
	h := newTestRouter(t)
	doReq(t, h, http.MethodGet, "/api/localidades", nil)

	rec := doReq(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wapoki_http_requests_total")
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(int64(f))
	return string(b)
}
