package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"oishii/backend/internal/config"
	"oishii/backend/internal/database"
	"oishii/backend/internal/geocode"
	"oishii/backend/internal/importer"
)

// geocodeDelay spaces out requests to the free geocoding API.
const geocodeDelay = time.Second

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  import import-restaurants <csv-file> [--update]")
	fmt.Fprintln(os.Stderr, "  import setup-production-data [--csv-file <csv-file>]")
	os.Exit(2)
}

func main() {
	config.LoadConfig()

	if len(os.Args) < 2 {
		usage()
	}

	database.Connect(config.AppConfig.DatabaseURL)

	opts := importer.Options{}
	if key := config.AppConfig.GeocodeAPIKey; key != "" {
		opts.Geo = geocode.NewClient(key, geocodeDelay)
	} else {
		log.Println("GEOCODE_API_KEY not set, geocoding disabled for this run")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "import-restaurants":
		fs := flag.NewFlagSet("import-restaurants", flag.ExitOnError)
		update := fs.Bool("update", false, "update existing restaurants instead of skipping them")
		fs.Parse(os.Args[2:])
		if fs.NArg() != 1 {
			usage()
		}
		opts.Update = *update

		file, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Fatalf("Failed to open CSV file: %v", err)
		}
		defer file.Close()

		result, err := importer.ImportRestaurants(ctx, database.DB, file, opts)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d, updated %d, skipped %d\n", result.Imported, result.Updated, result.Skipped)

	case "setup-production-data":
		fs := flag.NewFlagSet("setup-production-data", flag.ExitOnError)
		csvFile := fs.String("csv-file", "restaurants.csv", "CSV file with the seed catalog")
		fs.Parse(os.Args[2:])

		file, err := os.Open(*csvFile)
		if err != nil {
			log.Fatalf("Failed to open CSV file: %v", err)
		}
		defer file.Close()

		result, err := importer.SetupProductionData(ctx, database.DB, file, opts)
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		fmt.Printf("Imported %d, skipped %d\n", result.Imported, result.Skipped)

	default:
		usage()
	}
}
