package http_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega/internal/application/alert"
	appanalytics "github.com/jhoicas/bodega/internal/application/analytics"
	"github.com/jhoicas/bodega/internal/application/auth"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/application/usecase"
	"github.com/jhoicas/bodega/internal/infrastructure/export"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bodega/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	users := usecase.NewUserUseCase(store.Users()).WithBcryptCost(bcrypt.MinCost)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	alertUC := alert.NewAlertUseCase(store.Products(), nil, 10, nil, export.NewCSVExporter(), export.NewXLSXExporter())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		UserUC:       users,
		ProductUC:    usecase.NewProductUseCase(store.Products()),
		ArrivalUC:    inventory.NewArrivalUseCase(store.TxRunner(), store.Products(), store.Arrivals(), alertUC),
		CorrectionUC: inventory.NewCorrectionUseCase(store.TxRunner(), store.Products(), store.Corrections(), alertUC),
		HistoryUC:    usecase.NewHistoryUseCase(store.Products(), store.Arrivals(), store.Corrections()),
		AlertUC:      alertUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Dashboard(), store.Products(), 10),
		JWTSecret:    testJWTSecret,
	})

	ctx := context.Background()
	_, err := users.CreateUser(ctx, dto.CreateUserRequest{Username: "admin", Password: "admin-secret", Roles: []string{"ADMIN", "USER"}})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, dto.CreateUserRequest{Username: "bodeguero", Password: "bodega-secret"})
	require.NoError(t, err)

	env := &testEnv{app: app}
	env.adminToken = env.login(t, "admin", "admin-secret")
	env.userToken = env.login(t, "bodeguero", "bodega-secret")
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func (e *testEnv) createProduct(t *testing.T, sku string, qty, minLevel int) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/products", e.adminToken, map[string]interface{}{
		"name": "Producto " + sku, "sku": sku, "unit": "und",
		"min_order_level": minLevel, "quantity": qty, "unit_price": "2.50",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "incorrecta"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode, "usuario inexistente responde igual que password incorrecto")
}

func TestLogin_DejaCookieHttpOnly(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "admin-secret"})
	defer resp.Body.Close()

	var found *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.DefaultTokenCookie {
			found = ck
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.HttpOnly)
	assert.NotEmpty(t, found.Value)
}

func TestProfile_DevuelveAutoridades(t *testing.T) {
	env := newTestEnv(t)
	var out dto.ProfileResponse
	decode(t, env.do(t, http.MethodGet, "/api/profile", env.adminToken, nil), &out)

	assert.Equal(t, "admin", out.Username)
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_USER"}, out.Authorities)
}

func TestCreateUser_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	body := dto.CreateUserRequest{Username: "nuevo", Password: "password-123"}

	resp := env.do(t, http.MethodPost, "/api/users", env.userToken, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/users", env.adminToken, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/users", env.adminToken, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "username repetido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrudConBorradoLogico(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "T-1", 3, 5)

	resp := env.do(t, http.MethodPost, "/api/products", env.adminToken, map[string]interface{}{
		"name": "Otro", "sku": "T-1", "unit": "und",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "SKU duplicado")

	var updated dto.ProductResponse
	decode(t, env.do(t, http.MethodPut, "/api/products/"+p.ID, env.adminToken, map[string]interface{}{
		"name": "Tornillo 1/4", "sku": "T-1", "unit": "caja", "min_order_level": 8,
	}), &updated)
	assert.Equal(t, "Tornillo 1/4", updated.Name)
	assert.Equal(t, 3, updated.Quantity, "la edición no cambia la cantidad")

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, env.adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, env.userToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var list dto.ProductListResponse
	decode(t, env.do(t, http.MethodGet, "/api/products", env.userToken, nil), &list)
	assert.Equal(t, 0, list.Total)
}

func TestProducts_UsuarioNoPuedeCrear(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.userToken, map[string]interface{}{
		"name": "X", "sku": "X-1", "unit": "und",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts_ValidacionDevuelveCampos(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.adminToken, map[string]interface{}{
		"name": "  ", "sku": "S", "unit": "und", "quantity": -1,
	})
	var out dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &out)

	assert.Equal(t, "VALIDATION", out.Code)
	fields := map[string]bool{}
	for _, f := range out.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["quantity"])
}

func TestProducts_IDNoUUID_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/products/no-es-uuid", env.userToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Llegadas, correcciones e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestArrivalYCorreccion_ActualizanStockEHistorial(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "A-1", 2, 5)

	var arrival dto.StockChangeResponse
	resp := env.do(t, http.MethodPost, "/api/arrivals", env.userToken, dto.RegisterArrivalRequest{ProductID: p.ID, Quantity: 10, Source: "Proveedor S.A."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &arrival)
	assert.Equal(t, 12, arrival.NewQuantity)
	require.NotNil(t, arrival.Arrival)
	assert.Equal(t, "bodeguero", arrival.Arrival.CreatedBy)

	var correction dto.StockChangeResponse
	resp = env.do(t, http.MethodPost, "/api/corrections", env.userToken, dto.RegisterCorrectionRequest{ProductID: p.ID, Quantity: -4, Reason: "rotura"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &correction)
	assert.Equal(t, 8, correction.NewQuantity)

	resp = env.do(t, http.MethodPost, "/api/corrections", env.userToken, dto.RegisterCorrectionRequest{ProductID: p.ID, Quantity: -9, Reason: "conteo"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "no se permite stock negativo")

	var arrivals []dto.ArrivalResponse
	decode(t, env.do(t, http.MethodGet, "/api/arrivals/product/"+p.ID, env.userToken, nil), &arrivals)
	assert.Len(t, arrivals, 1)

	var corrections []dto.CorrectionResponse
	decode(t, env.do(t, http.MethodGet, "/api/corrections/product/"+p.ID, env.userToken, nil), &corrections)
	assert.Len(t, corrections, 1)

	var history dto.ProductHistoryResponse
	decode(t, env.do(t, http.MethodGet, "/api/history/"+p.ID, env.userToken, nil), &history)
	assert.Equal(t, 8, history.Product.Quantity)
	require.Len(t, history.Timeline, 2)
}

func TestCorreccion_SinMotivo_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "C-1", 5, 1)

	resp := env.do(t, http.MethodPost, "/api/corrections", env.userToken, dto.RegisterCorrectionRequest{ProductID: p.ID, Quantity: 1, Reason: "   "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestArrival_SuperaStockMaximo_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "M-1", 2147483646, 1)

	resp := env.do(t, http.MethodPost, "/api/arrivals", env.userToken, map[string]interface{}{
		"product_id": p.ID, "quantity": int64(3_000_000_000), "source": "Proveedor",
	})
	var out dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)

	resp = env.do(t, http.MethodPost, "/api/arrivals", env.userToken, dto.RegisterArrivalRequest{ProductID: p.ID, Quantity: 5, Source: "Proveedor"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "el stock resultante no cabe en la columna")

	resp = env.do(t, http.MethodPost, "/api/corrections", env.userToken, dto.RegisterCorrectionRequest{ProductID: p.ID, Quantity: 2, Reason: "conteo"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got dto.ProductResponse
	decode(t, env.do(t, http.MethodGet, "/api/products/"+p.ID, env.userToken, nil), &got)
	assert.Equal(t, 2147483646, got.Quantity)
}

func TestArrival_ProductoInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/arrivals", env.userToken, dto.RegisterArrivalRequest{
		ProductID: "6f1c7d2e-8a59-4d4b-9a3e-0b7a1f2c3d4e", Quantity: 1, Source: "X",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_UmbralPorDefectoYExplicito(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "B-1", 9, 20)
	env.createProduct(t, "B-2", 1, 5)
	env.createProduct(t, "B-3", 10, 5)

	var report dto.LowStockReportDTO
	decode(t, env.do(t, http.MethodGet, "/api/alerts/low-stock", env.userToken, nil), &report)
	assert.Equal(t, 10, report.Threshold)
	require.Equal(t, 2, report.Count, "el umbral es estricto: 10 no entra")
	assert.Equal(t, "B-2", report.Items[0].SKU, "ordenado por cantidad ascendente")
	assert.Equal(t, 11, report.Items[1].Deficit)

	decode(t, env.do(t, http.MethodGet, "/api/alerts/low-stock?threshold=2", env.userToken, nil), &report)
	assert.Equal(t, 1, report.Count)

	resp := env.do(t, http.MethodGet, "/api/alerts/low-stock?threshold=-1", env.userToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLowStockExport_CSVComoAdjunto(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "E-1", 1, 4)

	resp := env.do(t, http.MethodGet, "/api/alerts/low-stock/export", env.userToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename="low_stock_report_\d{8}_\d{6}\.csv"`, resp.Header.Get("Content-Disposition"))

	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"SKU", "Product Name", "Current Quantity", "Min Order Level", "Unit", "Deficit"}, rows[0])
	assert.Equal(t, "E-1", rows[1][0])
}

func TestLowStockExport_FormatoDesconocido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/alerts/low-stock/export?format=doc", env.userToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "D-1", 4, 5)
	resp := env.do(t, http.MethodPost, "/api/arrivals", env.userToken, dto.RegisterArrivalRequest{ProductID: p.ID, Quantity: 6, Source: "Proveedor"})
	resp.Body.Close()

	var out dto.DashboardSummaryDTO
	decode(t, env.do(t, http.MethodGet, "/api/dashboard/summary", env.userToken, nil), &out)
	assert.Equal(t, 1, out.ActiveProducts)
	assert.Equal(t, int64(10), out.TotalUnits)
	assert.Equal(t, "25", out.StockValue.String())
	assert.Equal(t, 1, out.ArrivalsToday)
}

func TestRutasProtegidas_SinToken_Retornan401(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/products", "/api/alerts/low-stock", "/api/dashboard/summary", "/api/profile"} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
