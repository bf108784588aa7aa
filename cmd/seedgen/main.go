package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/seed"
)

// seedgen writes the built-in catalogue as a seed file that SEED_FILE (or the
// S3 seed object) can point at. A ".gz" suffix produces a gzipped file.
func main() {
	out := flag.String("out", "data/seed/catalogue.json.gz", "path of the seed file to write")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := seed.DefaultCatalog()
	if err := writeSeedFile(*out, products); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
	for _, p := range products {
		fmt.Printf("  - %-20s %-22s R$ %.2f/100g\n", p.ID, p.Name, p.PricePer100g)
	}
}

func writeSeedFile(path string, products []model.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]model.Product{"products": products}); err != nil {
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}

	return nil
}
