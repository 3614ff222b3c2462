package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"Defaults", "", 20, 0},
		{"Explicit", "?limit=5&offset=10", 5, 10},
		{"Capped", "?limit=500", maxPaginationLimit, 0},
		{"Negative", "?limit=-1&offset=-3", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.limit, got.Limit)
			assert.Equal(t, tt.offset, got.Offset)
		})
	}
}

func TestParseIDInvalid(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		if _, err := s.parseID(c, "id"); err != nil {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	for _, param := range []string{"abc", "0", "-4"} {
		req := httptest.NewRequest(http.MethodGet, "/things/"+param, nil)
		resp, _ := app.Test(req)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "param %q", param)
	}
}
