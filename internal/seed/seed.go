package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/pricing"
	"trem-do-bem/internal/repository"
)

// Loader reads a catalogue from some source.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// DefaultCatalog returns the catalogue used when no seed file is configured.
func DefaultCatalog() []model.Product {
	return []model.Product{
		{ID: "p_semente_abobora", Name: "Semente de Abóbora", PricePer100g: 8.9, Image: "/images/produto1.jpeg", Active: true},
		{ID: "p_castanha_para", Name: "Castanha do Pará", PricePer100g: 19.99, Image: "/images/produto2.jpeg", Active: true},
		{ID: "p_canela_inteira", Name: "Canela Inteira", PricePer100g: 14.0, Image: "/images/produto3.jpeg", Active: true},
		{ID: "p_farinha_acai", Name: "Farinha de Açaí", PricePer100g: 19.0, Image: "/images/produto4.jpeg", Active: true},
	}
}

// Seed fills an empty catalogue. A store that already holds products is left untouched.
// An empty path seeds the built-in catalogue.
func Seed(ctx context.Context, repo repository.ProductRepository, loader Loader, path string, logger zerolog.Logger) (int, error) {
	logger = logger.With().Str("component", "seeder").Logger()

	existing, err := repo.GetAllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalogue: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug().Int("products", len(existing)).Msg("catalogue already populated, skipping seed")
		return 0, nil
	}

	products := DefaultCatalog()
	if path != "" && loader != nil {
		products, err = loader.Load(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("failed to load seed catalogue: %w", err)
		}
	}

	// Upserts prepend, so walk backwards to keep the seed order.
	for i := len(products) - 1; i >= 0; i-- {
		p := products[i]
		if _, err := repo.UpsertProduct(ctx, &p); err != nil {
			return 0, fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	logger.Info().Int("products", len(products)).Msg("catalogue seeded")
	return len(products), nil
}

type catalogueFile struct {
	Products []model.Product `json:"products"`
}

// decode reads a catalogue as a bare JSON array or as {"products": [...]}.
// Gzip input is detected from the stream header.
func decode(r io.Reader) ([]model.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	if len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		if data, err = io.ReadAll(gz); err != nil {
			return nil, fmt.Errorf("failed to decompress catalogue: %w", err)
		}
	}

	data = bytes.TrimSpace(data)
	var products []model.Product
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("failed to decode catalogue: %w", err)
		}
	} else {
		var doc catalogueFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalogue: %w", err)
		}
		products = doc.Products
	}

	return normalize(products)
}

func normalize(products []model.Product) ([]model.Product, error) {
	seen := make(map[string]bool, len(products))
	out := make([]model.Product, 0, len(products))
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalogue entry %d: id and name are required", i)
		}
		if !pricing.ValidPrice(p.PricePer100g) {
			return nil, fmt.Errorf("catalogue entry %s: invalid price", p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalogue entry %s: duplicate id", p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Image) == "" {
			p.Image = model.DefaultProductImage
		}
		out = append(out, p)
	}
	return out, nil
}
