package seeder

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// defaultRate pairs a reference-rate name with the value seeded when the
// row is absent
type defaultRate struct {
	Name       string
	AnnualRate decimal.Decimal
}

// RateSeeder ensures the baseline reference rates exist in the database
type RateSeeder struct {
	repo domain.ReferenceRateRepository
}

// NewRateSeeder creates a new RateSeeder instance
func NewRateSeeder(repo domain.ReferenceRateRepository) *RateSeeder {
	return &RateSeeder{
		repo: repo,
	}
}

// Seed inserts the default CDI and IPCA rates for any name not already
// present. Existing rows are never overwritten: operators may have
// updated them with fresher market values.
func (s *RateSeeder) Seed(ctx context.Context) error {
	defaults := []defaultRate{
		{Name: "CDI", AnnualRate: domain.DefaultCDIRate},
		{Name: "IPCA", AnnualRate: domain.DefaultIPCARate},
	}

	table, err := s.repo.Current(ctx)
	if err != nil {
		return err
	}

	for _, def := range defaults {
		if _, ok := table[def.Name]; ok {
			continue
		}
		if err := s.repo.Save(ctx, def.Name, def.AnnualRate); err != nil {
			return err
		}
	}

	return nil
}
