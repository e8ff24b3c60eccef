package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// CatalogSeed is the YAML layout of a catalog seed file.
type CatalogSeed struct {
	Rates struct {
		DistanceRate float64 `yaml:"distance_rate"`
		DurationRate float64 `yaml:"duration_rate"`
	} `yaml:"rates"`
	Surcharges []AdjustmentSeed `yaml:"surcharges"`
	Discounts  []AdjustmentSeed `yaml:"discounts"`
}

// AdjustmentSeed is one seeded surcharge or discount.
type AdjustmentSeed struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	Kind string  `yaml:"kind"`
	Rate float64 `yaml:"rate"`
}

// LoadCatalogSeed reads and validates a seed file.
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed CatalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog seed: %w", err)
	}
	return &seed, nil
}

func (s *CatalogSeed) validate() error {
	if !nonNegative(s.Rates.DistanceRate) || !nonNegative(s.Rates.DurationRate) {
		return errors.New("rates must be non-negative")
	}
	for _, list := range [][]AdjustmentSeed{s.Surcharges, s.Discounts} {
		for _, a := range list {
			if a.ID == "" || a.Name == "" {
				return errors.New("adjustments need an id and a name")
			}
			if !domain.AdjustmentKind(a.Kind).Valid() {
				return fmt.Errorf("adjustment %s: unknown kind %q", a.ID, a.Kind)
			}
			if math.IsNaN(a.Rate) || math.IsInf(a.Rate, 0) {
				return fmt.Errorf("adjustment %s: rate must be a finite number", a.ID)
			}
		}
	}
	return nil
}

// ApplyCatalogSeed writes the seeded rates and adds seeded adjustments that
// do not exist yet. Existing adjustments are left untouched. Returns the
// number of adjustments created.
func ApplyCatalogSeed(ctx context.Context, repo repository.CatalogRepository, seed *CatalogSeed) (int, error) {
	rates := &domain.Rates{DistanceRate: seed.Rates.DistanceRate, DurationRate: seed.Rates.DurationRate}
	if err := repo.UpdateRates(ctx, rates); err != nil {
		return 0, fmt.Errorf("seed rates: %w", err)
	}

	created := 0
	apply := func(typ domain.AdjustmentType, list []AdjustmentSeed) error {
		for i, a := range list {
			adj := &domain.Adjustment{
				ID:       a.ID,
				Name:     a.Name,
				Kind:     domain.AdjustmentKind(a.Kind),
				Rate:     a.Rate,
				Position: i + 1,
			}
			err := repo.CreateAdjustment(ctx, typ, adj)
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed %s %s: %w", typ, a.ID, err)
			}
			created++
		}
		return nil
	}

	if err := apply(domain.AdjustmentTypeSurcharge, seed.Surcharges); err != nil {
		return created, err
	}
	if err := apply(domain.AdjustmentTypeDiscount, seed.Discounts); err != nil {
		return created, err
	}
	return created, nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
