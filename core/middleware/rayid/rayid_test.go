package rayid_test

import (
	"net/http/httptest"
	"testing"

	"access-analyzer/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())

	var seen string
	app.Get("/probe", func(c *fiber.Ctx) error {
		seen, _ = c.Locals(rayid.LocalsKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	header := resp.Header.Get(rayid.HeaderName)
	require.NotEmpty(t, header)
	assert.Equal(t, header, seen, "locals and response header must carry the same ID")

	_, err = uuid.Parse(header)
	assert.NoError(t, err, "ray ID must be a valid UUID")
}
