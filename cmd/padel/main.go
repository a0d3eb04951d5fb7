package main

import (
	"github.com/joho/godotenv"

	"github.com/mcoot/padel-tournament/internal/cli"
)

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	cli.Execute()
}
