package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sampleapi/app/meta"
	"sampleapi/domain"
	"sampleapi/infra/memory"
	"sampleapi/internal/middleware"
	"sampleapi/pkg/config"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	openAPI, err := meta.LoadOpenAPI(context.Background(), meta.Info{Title: "Sample Item Service", Version: "1.0.0"})
	require.NoError(t, err)

	clock := t0
	repository := memory.NewMemRepository(memory.WithClock(func() time.Time {
		now := clock
		clock = clock.Add(time.Minute)
		return now
	}))

	return newApp(dependencies{
		config: &config.AppConfig{
			ServiceName:      "sample-item-service",
			ServiceTitle:     "Sample Item Service",
			DefaultPageLimit: 10,
		},
		repository: repository,
		openAPI:    openAPI,
	})
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			encoded, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func TestWelcome(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Welcome to Sample Item Service"}`, string(raw))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestItemLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "Widget", "price": 9.99})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, fmt.Sprintf(
		`{"id":1,"name":"Widget","description":null,"price":9.99,"tax":null,"createdAt":%q}`,
		t0.Format(time.RFC3339Nano),
	), string(raw))

	resp, raw = do(t, app, fiber.MethodGet, "/items/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[domain.Item](t, raw)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Widget", got.Name)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Tax)
	assert.True(t, got.CreatedAt.Equal(t0))

	resp, raw = do(t, app, fiber.MethodPut, "/items/1", map[string]any{"name": "Widget v2", "price": 12.0})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	updated := decode[domain.Item](t, raw)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 12.0, updated.Price)
	assert.True(t, updated.CreatedAt.Equal(t0))

	resp, raw = do(t, app, fiber.MethodDelete, "/items/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Item deleted successfully"}`, string(raw))

	resp, raw = do(t, app, fiber.MethodGet, "/items/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	notFound := decode[errorBody](t, raw)
	assert.Equal(t, "item.show.not_found", notFound.Code)
	assert.Equal(t, "Item not found", notFound.Message)
}

func TestUpdateIgnoresClientSuppliedIdentity(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "Widget", "price": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := do(t, app, fiber.MethodPut, "/items/1", map[string]any{
		"id":        42,
		"name":      "Renamed",
		"price":     2,
		"createdAt": "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	updated := decode[domain.Item](t, raw)
	assert.Equal(t, 1, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(t0))
}

func TestListPagination(t *testing.T) {
	app := newTestApp(t)

	for i := 1; i <= 15; i++ {
		resp, _ := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": fmt.Sprintf("item-%d", i), "price": i})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, raw := do(t, app, fiber.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Item](t, raw), 10)

	resp, raw = do(t, app, fiber.MethodGet, "/items?skip=10&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[[]domain.Item](t, raw)
	require.Len(t, page, 5)
	for i, it := range page {
		assert.Equal(t, 11+i, it.ID)
	}

	resp, raw = do(t, app, fiber.MethodGet, "/items?skip=100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, raw = do(t, app, fiber.MethodGet, fmt.Sprintf("/items?skip=1&limit=%d", math.MaxInt), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	page = decode[[]domain.Item](t, raw)
	require.Len(t, page, 14)
	assert.Equal(t, 2, page[0].ID)
	assert.Equal(t, 15, page[13].ID)
}

func TestPanicBecomesServerError(t *testing.T) {
	app := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, raw := do(t, app, fiber.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal_server_error", decode[errorBody](t, raw).Code)

	resp, _ = do(t, app, fiber.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEmptyNameIsAccepted(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "", "price": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "", decode[domain.Item](t, raw).Name)

	resp, raw = do(t, app, fiber.MethodPut, "/items/1", map[string]any{"name": "", "price": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "", decode[domain.Item](t, raw).Name)
}

func TestQueryStringDoesNotFillBody(t *testing.T) {
	app := newTestApp(t)
	resp, _ := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "Widget", "price": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		status   int
		code     string
		wantName string
	}{
		{"create from query only", fiber.MethodPost, "/items?name=FromQuery&price=5", `{}`, http.StatusBadRequest, "item.create.validation_failed", ""},
		{"create missing price in body", fiber.MethodPost, "/items?price=5", map[string]any{"name": "Widget"}, http.StatusBadRequest, "item.create.validation_failed", ""},
		{"update from query only", fiber.MethodPut, "/items/1?name=Q&price=3", `{}`, http.StatusBadRequest, "item.update.validation_failed", ""},
		{"update body wins", fiber.MethodPut, "/items/1?name=Q&tax=7", map[string]any{"name": "Body", "price": 1}, http.StatusOK, "", "Body"},
		{"query id ignored", fiber.MethodGet, "/items/1?ItemID=7&id=7", nil, http.StatusOK, "", "Body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, app, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, resp.StatusCode, string(raw))
			if tt.code != "" {
				assert.Equal(t, tt.code, decode[errorBody](t, raw).Code)
				return
			}
			got := decode[domain.Item](t, raw)
			assert.Equal(t, 1, got.ID)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Nil(t, got.Tax)
		})
	}
}

func TestEmptyListIsArray(t *testing.T) {
	resp, raw := do(t, newTestApp(t), fiber.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t)
	resp, _ := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "Widget", "price": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		code   string
	}{
		{"missing price", fiber.MethodPost, "/items", map[string]any{"name": "Widget"}, "item.create.validation_failed"},
		{"missing name", fiber.MethodPost, "/items", map[string]any{"price": 1}, "item.create.validation_failed"},
		{"null price", fiber.MethodPost, "/items", `{"name":"Widget","price":null}`, "item.create.validation_failed"},
		{"wrong type", fiber.MethodPost, "/items", `{"name":"Widget","price":"cheap"}`, "request.invalid_body"},
		{"broken json", fiber.MethodPost, "/items", `{"name":`, "request.invalid_body"},
		{"update missing name", fiber.MethodPut, "/items/1", map[string]any{"price": 1}, "item.update.validation_failed"},
		{"malformed skip", fiber.MethodGet, "/items?skip=abc", nil, "request.invalid_query_params"},
		{"negative limit", fiber.MethodGet, "/items?limit=-1", nil, "item.index.validation_failed"},
		{"malformed id", fiber.MethodGet, "/items/abc", nil, "request.invalid_path_params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
			assert.Equal(t, tt.code, decode[errorBody](t, raw).Code)
		})
	}
}

func TestValidationErrorHasFieldDetail(t *testing.T) {
	resp, raw := do(t, newTestApp(t), fiber.MethodPost, "/items", map[string]any{"name": "Widget"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[errorBody](t, raw)
	assert.JSONEq(t, `[{"field":"price","rule":"required","message":"price is required"}]`, string(body.Details))
}

func TestNotFoundOnMissingIDs(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method string
		body   any
		code   string
	}{
		{fiber.MethodGet, nil, "item.show.not_found"},
		{fiber.MethodPut, map[string]any{"name": "x", "price": 1}, "item.update.not_found"},
		{fiber.MethodDelete, nil, "item.destroy.not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp, raw := do(t, app, tt.method, "/items/7", tt.body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			body := decode[errorBody](t, raw)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "Item not found", body.Message)
		})
	}
}

func TestDeletedIDIsNotReused(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		resp, _ := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "n", "price": 1})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := do(t, app, fiber.MethodDelete, "/items/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := do(t, app, fiber.MethodPost, "/items", map[string]any{"name": "n", "price": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decode[domain.Item](t, raw).ID)
}

func TestUnknownRoute(t *testing.T) {
	resp, raw := do(t, newTestApp(t), fiber.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "request.invalid", decode[errorBody](t, raw).Code)
}

func TestOpenAPIDocument(t *testing.T) {
	resp, raw := do(t, newTestApp(t), fiber.MethodGet, meta.OpenAPIPath, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)

	doc := decode[map[string]any](t, raw)
	assert.Equal(t, "3.0.3", doc["openapi"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/items")
	assert.Contains(t, paths, "/items/{id}")
}
