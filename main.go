package main

import (
	"github.com/joho/godotenv"

	"salescope/cmd"
)

func main() {
	// Optional: SALESCOPE_* variables from a local .env file.
	_ = godotenv.Load()
	cmd.Execute()
}
