// Package main is the entry point for the site API service.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	// version can be set at build time via -ldflags
	version = "dev"
)

func main() {
	// Local development keeps credentials in .env; a missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "serve":
		runServer()
	case "version":
		log.Printf("site-api version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		log.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	log.Println(`Usage: site-api [command]

Commands:
  serve     Start the HTTP API server (default)
  version   Print the build version
  help      Show this help`)
}
