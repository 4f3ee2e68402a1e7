package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de persistencia para el handler del carrito
// ──────────────────────────────────────────────────────────────────────────────

// IDs con formato UUIDv4 válido: el handler valida product_id con uuid4.
const (
	keyboardID = "3f9f7b7e-6f4e-4c2a-9d8e-1a2b3c4d5e6f"
	unknownID  = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"
)

type stubStore struct {
	mu    sync.Mutex
	stock map[string]int
	lines map[string]*entity.CartItem // key: customerID + "|" + productID
}

type stubCartRepo struct{ s *stubStore }

func (r *stubCartRepo) FindOne(customerID, productID string) (*entity.CartItem, bool, error) {
	item, ok := r.s.lines[customerID+"|"+productID]
	if !ok {
		return nil, false, nil
	}
	cp := *item
	return &cp, true, nil
}

func (r *stubCartRepo) FindOneForUpdate(customerID, productID string) (*entity.CartItem, bool, error) {
	return r.FindOne(customerID, productID)
}

func (r *stubCartRepo) ListForCustomer(customerID string) ([]entity.CartLine, error) {
	out := make([]entity.CartLine, 0)
	for _, item := range r.s.lines {
		if item.CustomerID == customerID {
			out = append(out, entity.CartLine{
				Item:         *item,
				ProductName:  "Teclado",
				ProductPrice: decimal.NewFromInt(50),
				ProductStock: r.s.stock[item.ProductID],
			})
		}
	}
	return out, nil
}

func (r *stubCartRepo) Upsert(item *entity.CartItem) error {
	cp := *item
	r.s.lines[item.CustomerID+"|"+item.ProductID] = &cp
	return nil
}

func (r *stubCartRepo) Delete(customerID, productID string) (*entity.CartItem, bool, error) {
	key := customerID + "|" + productID
	item, ok := r.s.lines[key]
	if !ok {
		return nil, false, nil
	}
	delete(r.s.lines, key)
	return item, true, nil
}

type stubProductRepo struct{ s *stubStore }

func (r *stubProductRepo) Create(*entity.Product) error                  { return nil }
func (r *stubProductRepo) GetByID(string) (*entity.Product, error)       { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error                  { return nil }
func (r *stubProductRepo) Delete(string) (*entity.Product, error)        { return nil, nil }
func (r *stubProductRepo) List(int, int) ([]*entity.Product, int, error) { return nil, 0, nil }

func (r *stubProductRepo) GetStock(productID string) (int, bool, error) {
	n, ok := r.s.stock[productID]
	if !ok {
		return 0, false, nil
	}
	return n, true, nil
}

type stubTxRunner struct{ s *stubStore }

func (t *stubTxRunner) Run(ctx context.Context, fn func(repository.CartRepository, repository.ProductRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&stubCartRepo{s: t.s}, &stubProductRepo{s: t.s})
}

// buildCartApp monta las rutas del carrito con el middleware JWT real y un
// caso de uso respaldado por los fakes.
func buildCartApp() (*fiber.App, *stubStore) {
	s := &stubStore{
		stock: map[string]int{keyboardID: 5},
		lines: make(map[string]*entity.CartItem),
	}
	uc := cart.NewUseCase(&stubTxRunner{s: s}, &stubCartRepo{s: s}, &stubProductRepo{s: s})
	handler := apphttp.NewCartHandler(uc)

	app := fiber.New()
	grp := app.Group("/api/cart", apphttp.AuthMiddleware(testJWTSecret))
	grp.Post("/", handler.Add)
	grp.Get("/", handler.Get)
	grp.Put("/:productId", handler.Update)
	grp.Delete("/:productId", handler.Remove)
	return app, s
}

func doCartRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del handler del carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestCartHandler_SinToken_Retorna401(t *testing.T) {
	app, _ := buildCartApp()
	resp := doCartRequest(t, app, http.MethodGet, "/api/cart/", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartHandler_Add_CreaLinea(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, keyboardID, body["product_id"])
	assert.Equal(t, float64(3), body["quantity"])
	assert.Equal(t, testCustomerID, body["customer_id"],
		"la línea debe pertenecer al cliente del token")
}

func TestCartHandler_Add_StockInsuficiente_Retorna400(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 3 existentes + 3 nuevos supera el stock de 5
	resp = doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 3}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestCartHandler_Add_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": unknownID, "quantity": 1}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
}

func TestCartHandler_Add_CantidadInvalida_Retorna400(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": -1}, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartHandler_Update_FijaCantidad(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doCartRequest(t, app, http.MethodPut, "/api/cart/"+keyboardID,
		fiber.Map{"quantity": 5}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(5), body["quantity"], "update fija la cantidad absoluta")
}

func TestCartHandler_Update_CantidadCero_Retorna400(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doCartRequest(t, app, http.MethodPut, "/api/cart/"+keyboardID,
		fiber.Map{"quantity": 0}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_QUANTITY", body["code"],
		"cantidad cero se rechaza, nunca se convierte en delete")

	// La línea sigue existiendo con su cantidad previa
	resp = doCartRequest(t, app, http.MethodGet, "/api/cart/", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cartBody := decodeBody(t, resp)
	items := cartBody["items"].([]any)
	require.Len(t, items, 1)
}

func TestCartHandler_Update_LineaInexistente_Retorna404(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPut, "/api/cart/"+keyboardID,
		fiber.Map{"quantity": 2}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", body["code"])
}

func TestCartHandler_Remove_DevuelveSnapshotYLuego404(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodPost, "/api/cart/",
		fiber.Map{"product_id": keyboardID, "quantity": 5}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doCartRequest(t, app, http.MethodDelete, "/api/cart/"+keyboardID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(5), body["quantity"], "la respuesta debe ser el snapshot eliminado")

	resp = doCartRequest(t, app, http.MethodDelete, "/api/cart/"+keyboardID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", body["code"])
}

func TestCartHandler_Get_CarritoVacio(t *testing.T) {
	app, _ := buildCartApp()
	token := tokenForRole(t, "customer")

	resp := doCartRequest(t, app, http.MethodGet, "/api/cart/", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	items, ok := body["items"].([]any)
	require.True(t, ok, "items debe ser una lista, no null")
	assert.Empty(t, items)
}
