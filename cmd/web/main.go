package main

import (
	"fitforge_backend/internal/app"
	"fitforge_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("Application stopped with error", "error", err)
	}
}
