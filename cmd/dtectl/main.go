package main

import (
	"os"

	"github.com/jhoicas/facturacion-sv/internal/interfaces/cli"
	"github.com/jhoicas/facturacion-sv/pkg/logger"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	// stdout queda reservado para el JSON de resultados.
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
	cli.Execute(log.WithComponent("dtectl"))
}
