package params

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// assumptionsFile is the YAML shape of an assumptions override file:
//
//	parameters:
//	  inflation.general: "0.065"
//	tax_slabs:
//	  new:
//	    - up_to: "300000"
//	      rate: "0"
//	    - rate: "0.30"
type assumptionsFile struct {
	Parameters map[string]string        `yaml:"parameters"`
	TaxSlabs   map[string][]yamlTaxSlab `yaml:"tax_slabs"`
}

type yamlTaxSlab struct {
	UpTo string `yaml:"up_to"`
	Rate string `yaml:"rate"`
}

// LoadAssumptionsFile applies a YAML assumptions file at bootstrap
// priority. File values override built-in defaults but lose to admin and
// session overrides.
func (s *Store) LoadAssumptionsFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read assumptions file: %w", err)
	}

	var file assumptionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse assumptions file: %w", err)
	}

	for p, rawValue := range file.Parameters {
		value, err := decimal.NewFromString(rawValue)
		if err != nil {
			return domain.NewValidationError(p, "assumptions file value is not numeric")
		}
		if err := s.Set(ctx, p, value, domain.PriorityBootstrap, "assumptions file", path); err != nil {
			return err
		}
	}

	for regime, yamlSlabs := range file.TaxSlabs {
		slabs := make([]TaxSlab, 0, len(yamlSlabs))
		for _, ys := range yamlSlabs {
			rate, err := decimal.NewFromString(ys.Rate)
			if err != nil {
				return domain.NewValidationError("tax_slabs."+regime, "slab rate is not numeric")
			}
			sl := TaxSlab{Rate: rate}
			if ys.UpTo != "" {
				upTo, err := decimal.NewFromString(ys.UpTo)
				if err != nil {
					return domain.NewValidationError("tax_slabs."+regime, "slab bound is not numeric")
				}
				sl.UpTo = &upTo
			}
			slabs = append(slabs, sl)
		}
		s.SetSlabs(TaxRegime(regime), slabs)
	}
	return nil
}
