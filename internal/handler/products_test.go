package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/config"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/dto"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/infra"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "test.db"), 5000)
	require.NoError(t, err)
	require.NoError(t, infra.ApplyPending(db))

	return router.New(&config.Config{Env: "test"}, db)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func product(t *testing.T, env envelope) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

const brushJSON = `{
	"name": "Brush 2in",
	"unit": "PCS",
	"costPrice": 85,
	"salePrice": 120,
	"minStock": 25
}`

func TestCreateProductEnvelope(t *testing.T) {
	r := newTestServer(t)

	// A quantity-like field in the payload must be ignored.
	w, env := do(t, r, http.MethodPost, "/v1/products",
		`{"name":"Brush 2in","costPrice":85,"salePrice":120,"minStock":25,"quantity":50}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.OK)
	require.Nil(t, env.Error)

	p := product(t, env)
	assert.Positive(t, p.ID)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, "ACTIVE", p.Status)
	assert.Equal(t, "PCS", p.Unit)
}

func TestCreateValidationFailure(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, http.MethodPost, "/v1/products", `{"name":"B","unit":"BOX"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "name")
	assert.Contains(t, env.Error.Fields, "unit")
}

func TestCreateDuplicateSKU(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, http.MethodPost, "/v1/products",
		`{"name":"Brush 2in","sku":"X1","costPrice":85,"salePrice":120,"minStock":25}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodPost, "/v1/products",
		`{"name":"Brush 3in","sku":"X1","costPrice":90,"salePrice":130,"minStock":25}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_KEY", env.Error.Code)

	_, env = do(t, r, http.MethodGet, "/v1/products?status=ALL", "")
	var list []dto.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestGetMissingProduct(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, http.MethodGet, "/v1/products/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/v1/products/abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestDeleteWithStockIsRejected(t *testing.T) {
	r := newTestServer(t)

	_, env := do(t, r, http.MethodPost, "/v1/products", brushJSON)
	id := product(t, env).ID

	w, _ := do(t, r, http.MethodPatch,
		"/v1/products/"+itoa(id)+"/quantity", `{"delta": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodDelete, "/v1/products/"+itoa(id), "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BUSINESS_RULE", env.Error.Code)

	// Product survives.
	w, _ = do(t, r, http.MethodGet, "/v1/products/"+itoa(id), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetStatusAffectsListFilter(t *testing.T) {
	r := newTestServer(t)

	_, env := do(t, r, http.MethodPost, "/v1/products", brushJSON)
	id := product(t, env).ID

	w, env := do(t, r, http.MethodPatch,
		"/v1/products/"+itoa(id)+"/status", `{"status":"INACTIVE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INACTIVE", product(t, env).Status)

	_, env = do(t, r, http.MethodGet, "/v1/products", "")
	var active []dto.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.Empty(t, active)

	_, env = do(t, r, http.MethodGet, "/v1/products?status=ALL", "")
	var all []dto.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)
}

func TestUpdatePartialViaBoundary(t *testing.T) {
	r := newTestServer(t)

	_, env := do(t, r, http.MethodPost, "/v1/products", brushJSON)
	created := product(t, env)

	w, env := do(t, r, http.MethodPut,
		"/v1/products/"+itoa(created.ID), `{"costPrice": 99.5}`)
	require.Equal(t, http.StatusOK, w.Code)

	updated := product(t, env)
	assert.Equal(t, "99.5", updated.CostPrice.String())
	assert.Equal(t, created.Name, updated.Name)
	assert.True(t, updated.SalePrice.Equal(created.SalePrice))
}

func TestMalformedJSONBody(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, http.MethodPost, "/v1/products", `{"name": `)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
