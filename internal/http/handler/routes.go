package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/service"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; the service owns the workflow.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.BookingService, store storage.Storage) {
	app.Get("/", Root())

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: readiness checks DB connectivity, liveness does not
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/bookings", CreateBooking(svc))
	app.Get("/api/bookings", ListBookings(svc))
	app.Get("/api/bookings/:bookingId", GetBooking(svc))

	// Stored photos; no access control on purpose, references are opaque
	app.Get("/uploads/:name", ServeUpload(store))
}
