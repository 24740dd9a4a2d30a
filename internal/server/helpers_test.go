package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"commentId", "comment ID"},
		{"artworkId", "artwork ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestParsePage(t *testing.T) {
	app := fiber.New()
	var got PageParams
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parsePage(c)
		return c.SendString("ok")
	})

	tests := []struct {
		name string
		url  string
		want PageParams
	}{
		{"defaults", "/x", PageParams{Page: 1, PageSize: 20}},
		{"explicit", "/x?page=3&page_size=10", PageParams{Page: 3, PageSize: 10}},
		{"limit alias", "/x?limit=15", PageParams{Page: 1, PageSize: 15}},
		{"clamps size", "/x?page_size=500", PageParams{Page: 1, PageSize: 50}},
		{"clamps page", "/x?page=-2", PageParams{Page: 1, PageSize: 20}},
		{"zero size", "/x?page_size=0", PageParams{Page: 1, PageSize: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDWritesBadRequest(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/things/0", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/things/7", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestToggleActionLabel(t *testing.T) {
	assert.Equal(t, "liked", toggleActionLabel(true, "liked", "unliked"))
	assert.Equal(t, "unliked", toggleActionLabel(false, "liked", "unliked"))
	assert.Equal(t, "saved", toggleActionLabel(true, "saved", "unsaved"))
	assert.Equal(t, "unsaved", toggleActionLabel(false, "saved", "unsaved"))
	assert.Equal(t, "followed", toggleActionLabel(true, "followed", "unfollowed"))
	assert.Equal(t, "unfollowed", toggleActionLabel(false, "followed", "unfollowed"))
}
