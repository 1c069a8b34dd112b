package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nysm/internal/records"
	"github.com/roach88/nysm/internal/store"
	"github.com/roach88/nysm/pkg/api"
)

// newRecordsMux builds the record routes over a real service backed by a
// temp directory.
func newRecordsMux(t *testing.T) (*http.ServeMux, *records.Service) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	svc := records.NewService(st, logger)

	h := NewRecordsHandler(logger, svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/save-feelings", h.SaveFeelings)
	mux.HandleFunc("GET /api/get-feelings", h.GetFeelings)
	mux.HandleFunc("POST /api/save-coins", h.SaveCoins)
	mux.HandleFunc("GET /api/get-coins", h.GetCoins)
	mux.HandleFunc("POST /api/save-todos", h.SaveTodos)
	mux.HandleFunc("GET /api/get-todos", h.GetTodos)
	mux.HandleFunc("POST /api/save-bookmark", h.SaveBookmark)
	mux.HandleFunc("GET /api/get-bookmark/{bookId}", h.GetBookmark)
	mux.HandleFunc("GET /api/get-all-bookmarks", h.GetAllBookmarks)
	mux.HandleFunc("GET /api/get-products", h.GetProducts)
	mux.HandleFunc("POST /api/add-product", h.AddProduct)
	mux.HandleFunc("POST /api/purchase-product", h.PurchaseProduct)
	mux.HandleFunc("GET /api/get-purchases", h.GetPurchases)
	return mux, svc
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, body string) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var resp api.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestSaveAndGetCoins(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-coins", `{"coins":150}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-coins", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)

	var data api.CoinData
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, int64(150), data.Coins)
}

func TestSaveCoinsBadPayload(t *testing.T) {
	mux, _ := newRecordsMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"non-numeric coins", `{"coins":"abc"}`},
		{"missing coins", `{}`},
		{"negative coins", `{"coins":-5}`},
		{"not json", `coins=5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-coins", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSaveAndGetFeelings(t *testing.T) {
	mux, _ := newRecordsMux(t)

	body := `{"feelings":[{"userId":"wanderer","message":"a good day","encrypted":false}]}`
	rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-feelings", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-feelings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)

	var feelings []api.Feeling
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &feelings))
	require.Len(t, feelings, 1)

	// the stored form is obfuscated
	assert.True(t, feelings[0].Encrypted)
	assert.NotEqual(t, "wanderer", feelings[0].UserID)
}

func TestSaveFeelingsRequiresArray(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-feelings", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)
}

func TestSaveAndGetTodos(t *testing.T) {
	mux, _ := newRecordsMux(t)

	body := `{"todos":[{"id":1,"text":"water the plants"},{"id":2,"text":"read"}]}`
	rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-todos", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-todos", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var data api.TodoData
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Len(t, data.Todos, 2)
}

func TestBookmarkFlow(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-bookmark",
		`{"bookId":"grimm","page":12,"title":"Grimm Tales"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)

	// a quoted page number is coerced, not rejected
	rr, _ = doJSON(t, mux, http.MethodPost, "/api/save-bookmark",
		`{"bookId":"grimm","page":"48","title":"Grimm Tales"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-bookmark/grimm", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var bm api.Bookmark
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &bm))
	assert.Equal(t, "grimm", bm.BookID)
	assert.Equal(t, 48, bm.Page)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-all-bookmarks", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var list []api.Bookmark
	raw, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)
}

func TestSaveBookmarkBadInput(t *testing.T) {
	mux, _ := newRecordsMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing bookId", `{"page":12}`},
		{"non-numeric page", `{"bookId":"grimm","page":"abc"}`},
		{"negative page", `{"bookId":"grimm","page":-1}`},
		{"bad timestamp", `{"bookId":"grimm","page":1,"timestamp":"yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := doJSON(t, mux, http.MethodPost, "/api/save-bookmark", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestGetBookmarkNotFound(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodGet, "/api/get-bookmark/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, resp.Success)
}

func TestAddAndListProducts(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodPost, "/api/add-product",
		`{"name":"amuse SUNDAY","description":"星期天","price":4490}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-products", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var list []api.Product
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "amuse SUNDAY", list[0].Name)
	assert.Equal(t, int64(4490), list[0].Price)
	assert.NotZero(t, list[0].ID)
}

func TestAddProductRejectsBadPrice(t *testing.T) {
	mux, _ := newRecordsMux(t)

	rr, resp := doJSON(t, mux, http.MethodPost, "/api/add-product",
		`{"name":"freebie","description":"nothing is free","price":0}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, resp.Success)
}

func TestPurchaseFlow(t *testing.T) {
	mux, svc := newRecordsMux(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultCatalog(ctx))
	_, err := svc.SaveCoins(ctx, 5000)
	require.NoError(t, err)

	// historic clients send the product id as a string
	rr, resp := doJSON(t, mux, http.MethodPost, "/api/purchase-product", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)

	var result api.PurchaseResult
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, int64(510), result.RemainingCoins)
	assert.Equal(t, "amuse SUNDAY", result.Purchase.ProductName)

	rr, resp = doJSON(t, mux, http.MethodGet, "/api/get-purchases", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var purchases []api.Purchase
	raw, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &purchases))
	assert.Len(t, purchases, 1)
}

func TestPurchaseErrors(t *testing.T) {
	mux, svc := newRecordsMux(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultCatalog(ctx))
	_, err := svc.SaveCoins(ctx, 100)
	require.NoError(t, err)

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"insufficient funds", `{"productId":1}`, http.StatusBadRequest},
		{"unknown product", `{"productId":999}`, http.StatusNotFound},
		{"price mismatch", `{"productId":1,"price":1}`, http.StatusBadRequest},
		{"missing product id", `{}`, http.StatusBadRequest},
		{"garbage product id", `{"productId":"first"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := doJSON(t, mux, http.MethodPost, "/api/purchase-product", tt.body)
			assert.Equal(t, tt.expected, rr.Code)
			assert.False(t, resp.Success)
		})
	}

	// every rejected attempt left the balance alone
	ledger, err := svc.GetCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), ledger.Coins)
}
