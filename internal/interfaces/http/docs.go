package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-sv/docs"
)

// Docs monta Swagger UI en /docs y la especificación en /docs/swagger.json.
// La especificación sale del paquete docs (swag init), no del disco.
func Docs(app *fiber.App, title string) {
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       title,
	}))
}
