// Package importer loads restaurant catalog rows from CSV files. The two
// entry points back the import-restaurants and setup-production-data CLI
// commands; both are idempotent by restaurant name.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode"

	"oishii/backend/internal/models"

	"gorm.io/gorm"
)

// Geocoder resolves a free-text query to coordinates. Nil means geocoding is
// disabled for the run (no API key configured).
type Geocoder interface {
	Lookup(ctx context.Context, query string) (lat, lng float64, err error)
}

// Result counts what happened to the rows of one import run.
type Result struct {
	Imported int
	Updated  int
	Skipped  int
}

// Options controls an import run.
type Options struct {
	// Update rewrites existing restaurants instead of skipping them
	// (import-restaurants --update).
	Update bool

	// Geo fills in coordinates for rows that lack them. Optional.
	Geo Geocoder
}

// row is one parsed CSV record. Expected columns:
// name, cuisine, lat, lon, address, website, price, category.
type row struct {
	name     string
	cuisine  string
	address  string
	website  string
	price    string
	category string
	lat      *float64
	lng      *float64
	badCoord bool
}

// ImportRestaurants reads the CSV and inserts or updates restaurants one row
// at a time. A row failure never aborts the run.
func ImportRestaurants(ctx context.Context, db *gorm.DB, r io.Reader, opts Options) (Result, error) {
	var res Result
	err := eachRow(r, func(rec row) error {
		if rec.name == "" {
			res.Skipped++
			return nil
		}
		fillCoordinates(ctx, &rec, opts.Geo)

		var existing models.Restaurant
		err := db.Where("name = ?", rec.name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(rec.restaurant()).Error; err != nil {
				return err
			}
			res.Imported++
			log.Printf("Imported: %s", rec.name)
		case err != nil:
			return err
		case opts.Update:
			existing.Cuisine = rec.cuisine
			existing.Lat = rec.lat
			existing.Lng = rec.lng
			if err := db.Save(&existing).Error; err != nil {
				return err
			}
			res.Updated++
			log.Printf("Updated: %s", rec.name)
		default:
			res.Skipped++
			log.Printf("Skipped existing: %s", rec.name)
		}
		return nil
	})
	return res, err
}

// SetupProductionData seeds the catalog from a curated CSV. All inserts run
// in one transaction; rows without usable coordinates are skipped. Safe to
// run repeatedly.
func SetupProductionData(ctx context.Context, db *gorm.DB, r io.Reader, opts Options) (Result, error) {
	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		return eachRow(r, func(rec row) error {
			if rec.name == "" {
				res.Skipped++
				return nil
			}

			var count int64
			if err := tx.Model(&models.Restaurant{}).Where("name = ?", rec.name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				res.Skipped++
				log.Printf("Skipped existing: %s", rec.name)
				return nil
			}

			fillCoordinates(ctx, &rec, opts.Geo)
			if rec.lat == nil || rec.lng == nil {
				res.Skipped++
				log.Printf("Missing coordinates for %s", rec.name)
				return nil
			}

			if err := tx.Create(rec.restaurant()).Error; err != nil {
				return err
			}
			res.Imported++
			log.Printf("Imported: %s", rec.name)
			return nil
		})
	})
	return res, err
}

func eachRow(r io.Reader, fn func(rec row) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		parsed := row{
			name:     field(rec, "name"),
			cuisine:  field(rec, "cuisine"),
			address:  field(rec, "address"),
			website:  field(rec, "website"),
			price:    field(rec, "price"),
			category: field(rec, "category"),
		}
		if parsed.category == "" {
			parsed.category = models.CategoryRestaurant
		}

		latStr, lonStr := field(rec, "lat"), field(rec, "lon")
		if latStr != "" && lonStr != "" {
			lat, latErr := strconv.ParseFloat(latStr, 64)
			lng, lonErr := strconv.ParseFloat(lonStr, 64)
			if latErr != nil || lonErr != nil {
				log.Printf("Invalid coordinates for %s: lat=%s, lon=%s", parsed.name, latStr, lonStr)
				parsed.badCoord = true
			} else {
				parsed.lat, parsed.lng = &lat, &lng
			}
		}

		if err := fn(parsed); err != nil {
			return err
		}
	}
	return nil
}

func fillCoordinates(ctx context.Context, rec *row, geo Geocoder) {
	if rec.lat != nil || rec.badCoord || geo == nil {
		return
	}
	query := rec.name
	if rec.address != "" {
		query += ", " + rec.address
	}
	lat, lng, err := geo.Lookup(ctx, query)
	if err != nil {
		// Keep the row, just without coordinates.
		log.Printf("Geocoding failed for %s: %v", rec.name, err)
		return
	}
	rec.lat, rec.lng = &lat, &lng
}

func (r row) restaurant() *models.Restaurant {
	return &models.Restaurant{
		Name:     r.name,
		Cuisine:  r.cuisine,
		Address:  r.address,
		City:     ExtractCity(r.address),
		Website:  r.website,
		Price:    r.price,
		Category: r.category,
		Lat:      r.lat,
		Lng:      r.lng,
	}
}

// ExtractCity pulls a city name out of a free-text address. Addresses in the
// source CSVs end with "..., City POSTCODE"; the postcode tokens (anything
// carrying a digit) are stripped from the last segment.
func ExtractCity(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	last := strings.Fields(strings.TrimSpace(parts[len(parts)-1]))
	var words []string
	for _, w := range last {
		if strings.ContainsFunc(w, unicode.IsDigit) {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
