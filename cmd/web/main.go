package main

import (
	_ "github.com/joho/godotenv/autoload"

	"souq_backend/internal/app"
)

func main() {
	app.Run()
}
