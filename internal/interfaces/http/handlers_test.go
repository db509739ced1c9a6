package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-ventas/internal/interfaces/http"
	"github.com/jhoicas/pos-ventas/internal/testutil"
	pkgjwt "github.com/jhoicas/pos-ventas/pkg/jwt"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

type server struct {
	app    *fiber.App
	env    *testutil.Env
	authUC *auth.AuthUseCase
}

func newServer(t *testing.T) *server {
	t.Helper()
	env := testutil.NewEnv()
	authUC := auth.NewAuthUseCase(env.Store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		Carts:       env.Carts,
		Customers:   env.Store.Customers(),
		Checkout:    env.Checkout,
		CancelOrder: env.Cancel,
		Orders:      env.Orders,
		AdjustStock: env.Adjust,
		StockQuery:  env.Stock,
		Prices:      env.Prices,
		JWTSecret:   testJWTSecret,
		Logger:      logger.Nop(),
	})
	return &server{app: app, env: env, authUC: authUC}
}

// token crea el usuario en el store y devuelve su header Authorization.
func (s *server) token(t *testing.T, email, role string) string {
	t.Helper()
	_, u := s.env.User(t, email, role)
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) do(t *testing.T, method, path, authHeader string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHTTP_CarritoYCobro(t *testing.T) {
	s := newServer(t)
	seller := s.token(t, "vendedor@pos.pe", entity.RoleVendedor)
	p := s.env.Product(t, "12.50", "9.00", 5)

	resp, raw := s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	cart := decode[dto.CartResponse](t, raw)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Total.Equal(testutil.Dec("37.50")))
	assert.True(t, cart.Tax.Equal(testutil.Dec("5.72")))
	assert.Equal(t, entity.DocumentReceipt, cart.DocumentType)

	resp, raw = s.do(t, http.MethodPost, "/api/cart/items/"+cart.Lines[0].ID+"/decrement", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 2, decode[dto.CartResponse](t, raw).ItemCount)

	resp, raw = s.do(t, http.MethodPut, "/api/cart/document-type", seller, dto.SetDocumentTypeRequest{DocumentType: entity.DocumentInvoice})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = s.do(t, http.MethodPost, "/api/sales/checkout", seller, dto.CheckoutRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCash, Amount: testutil.Dec("30.00")}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	order := decode[dto.OrderResponse](t, raw)
	assert.Equal(t, "F001-0000001", order.Number)
	assert.Equal(t, entity.OrderCompleted, order.Status)
	assert.True(t, order.Total.Equal(testutil.Dec("25.00")))
	assert.True(t, order.Change.Equal(testutil.Dec("5.00")))
	require.Len(t, order.Movements, 1)
	assert.Equal(t, "-2", order.Movements[0].Label)
	assert.Equal(t, 3, s.env.Qty(t, p.ID))

	// el carrito queda vacío tras el cobro
	_, raw = s.do(t, http.MethodGet, "/api/cart", seller, nil)
	assert.Empty(t, decode[dto.CartResponse](t, raw).Lines)

	resp, raw = s.do(t, http.MethodGet, "/api/orders?period=today&search=F001", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	list := decode[dto.OrderListResponse](t, raw)
	require.Len(t, list.Orders, 1)
	assert.True(t, list.SalesTotal.Equal(testutil.Dec("25.00")))

	resp, raw = s.do(t, http.MethodGet, "/api/orders/"+order.ID, seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, decode[dto.OrderResponse](t, raw).Payments, 1)
}

func TestHTTP_ErroresDeVenta(t *testing.T) {
	s := newServer(t)
	seller := s.token(t, "caja@pos.pe", entity.RoleVendedor)
	p := s.env.Product(t, "10.00", "", 2)
	sinPrecio := s.env.Product(t, "", "", 4)

	resp, raw := s.do(t, http.MethodPost, "/api/sales/checkout", seller, dto.CheckoutRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCash, Amount: testutil.Dec("1")}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
	require.NotNil(t, errResp.Available)
	assert.Equal(t, 2, *errResp.Available)

	resp, raw = s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: sinPrecio.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_ACTIVE_PRICE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: "no-existe"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(raw))

	resp, _ = s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = s.do(t, http.MethodPost, "/api/sales/checkout", seller, dto.CheckoutRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCash, Amount: testutil.Dec("19.99")}},
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_PAYMENT", decode[dto.ErrorResponse](t, raw).Code)
	assert.Equal(t, 2, s.env.Qty(t, p.ID), "un cobro rechazado no toca el stock")

	resp, _ = s.do(t, http.MethodPut, "/api/cart/document-type", seller, dto.SetDocumentTypeRequest{DocumentType: "nota"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, "/api/cart/customer", seller, dto.SetCustomerRequest{CustomerID: "desconocido"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/orders?period=year", seller, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTP_CancelacionDePedido(t *testing.T) {
	s := newServer(t)
	seller := s.token(t, "v@pos.pe", entity.RoleVendedor)
	keeper := s.token(t, "b@pos.pe", entity.RoleBodeguero)
	p := s.env.Product(t, "4.00", "", 3)

	s.do(t, http.MethodPost, "/api/cart/items", seller, dto.AddCartItemRequest{ProductID: p.ID, Quantity: 3})
	_, raw := s.do(t, http.MethodPost, "/api/sales/checkout", seller, dto.CheckoutRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentYape, Amount: testutil.Dec("12.00"), Reference: "op-1"}},
	})
	order := decode[dto.OrderResponse](t, raw)
	require.Equal(t, 0, s.env.Qty(t, p.ID))

	resp, _ := s.do(t, http.MethodPost, "/api/orders/"+order.ID+"/cancel", keeper, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = s.do(t, http.MethodPost, "/api/orders/"+order.ID+"/cancel", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, entity.OrderCancelled, decode[dto.OrderResponse](t, raw).Status)
	assert.Equal(t, 3, s.env.Qty(t, p.ID))

	resp, raw = s.do(t, http.MethodPost, "/api/orders/"+order.ID+"/cancel", seller, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_CANCELLABLE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestHTTP_Inventario(t *testing.T) {
	s := newServer(t)
	keeper := s.token(t, "almacen@pos.pe", entity.RoleBodeguero)
	seller := s.token(t, "ventas@pos.pe", entity.RoleVendedor)
	p := s.env.Product(t, "3.00", "", 0)

	body := dto.AdjustStockRequest{ProductID: p.ID, Type: entity.MovementIN, Quantity: 8, Reason: "Compra"}
	resp, _ := s.do(t, http.MethodPost, "/api/inventory/adjustments", seller, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := s.do(t, http.MethodPost, "/api/inventory/adjustments", keeper, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	mov := decode[dto.MovementResponse](t, raw)
	assert.Equal(t, "+8", mov.Label)
	assert.Equal(t, 8, mov.QuantityAfter)

	resp, raw = s.do(t, http.MethodPost, "/api/inventory/adjustments", keeper, dto.AdjustStockRequest{ProductID: p.ID, Type: entity.MovementOUT, Quantity: 9, Reason: "Merma"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 8, *decode[dto.ErrorResponse](t, raw).Available)

	resp, raw = s.do(t, http.MethodPost, "/api/inventory/adjustments", keeper, dto.AdjustStockRequest{ProductID: p.ID, Type: entity.MovementSALE, Quantity: 1, Reason: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ADJUSTMENT", decode[dto.ErrorResponse](t, raw).Code)

	maximum := 20
	resp, raw = s.do(t, http.MethodPut, "/api/inventory/products/"+p.ID+"/thresholds", keeper, dto.ThresholdsRequest{Minimum: 10, Maximum: &maximum})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, entity.StockStatusLow, decode[dto.StockResponse](t, raw).Status)

	resp, raw = s.do(t, http.MethodGet, "/api/inventory/stock?filter=low", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	stock := decode[[]dto.StockResponse](t, raw)
	require.Len(t, stock, 1)
	assert.Equal(t, p.Code, stock[0].Code)

	resp, raw = s.do(t, http.MethodGet, "/api/inventory/products/"+p.ID+"/movements", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.MovementResponse](t, raw), 1)

	resp, raw = s.do(t, http.MethodGet, "/api/inventory/products/"+p.ID+"/verify", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check := decode[dto.LedgerCheckResponse](t, raw)
	assert.True(t, check.Consistent)
	assert.Equal(t, 8, check.Replayed)
	assert.Nil(t, check.BrokenAt)
}

func TestHTTP_Precios(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, "admin@pos.pe", entity.RoleAdmin)
	seller := s.token(t, "v2@pos.pe", entity.RoleVendedor)
	p := s.env.Product(t, "5.00", "", 0)

	req := testutil.PriceRequest("11.00", "6.00", true)
	resp, _ := s.do(t, http.MethodPost, "/api/products/"+p.ID+"/prices", seller, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := s.do(t, http.MethodPost, "/api/products/"+p.ID+"/prices", admin, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.PriceResponse](t, raw)
	assert.True(t, created.IsActive)
	assert.True(t, created.Margin.Equal(testutil.Dec("45.45")))

	resp, raw = s.do(t, http.MethodGet, "/api/products/"+p.ID+"/prices", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prices := decode[[]dto.PriceResponse](t, raw)
	require.Len(t, prices, 2)
	assert.Equal(t, created.ID, prices[0].ID, "el activo va primero")
	assert.False(t, prices[1].IsActive)

	resp, raw = s.do(t, http.MethodPost, "/api/prices/"+prices[1].ID+"/activate", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, _ = s.do(t, http.MethodDelete, "/api/prices/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(t, http.MethodDelete, "/api/prices/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, "/api/prices/x", admin, dto.PriceRequest{UnitPrice: testutil.Dec("-1")})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTP_LoginYRegistro(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, "root@pos.pe", entity.RoleAdmin)

	resp, raw := s.do(t, http.MethodPost, "/api/auth/register", admin, dto.RegisterRequest{Email: "nuevo@pos.pe", Password: "secreto123", Role: entity.RoleVendedor})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = s.do(t, http.MethodPost, "/api/auth/register", admin, dto.RegisterRequest{Email: "nuevo@pos.pe", Password: "secreto123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/register", admin, dto.RegisterRequest{Email: "corto@pos.pe", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "NUEVO@pos.pe", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	login := decode[dto.LoginResponse](t, raw)
	assert.Equal(t, entity.RoleVendedor, login.User.Role)

	// el token emitido sirve para operar
	resp, _ = s.do(t, http.MethodGet, "/api/cart", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nuevo@pos.pe", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/register", "Bearer "+login.Token, dto.RegisterRequest{Email: "otro@pos.pe", Password: "secreto123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
