package main

import (
	"gebeya_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	app.Run()
}
