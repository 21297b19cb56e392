package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// Fixed UUIDs for the built-in category catalogue. Stable across
// deployments so goals can reference categories by id.
var (
	CAT_EMERGENCY_FUND    = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	CAT_DEBT_REPAYMENT    = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	CAT_RETIREMENT        = uuid.MustParse("00000000-0000-0000-0000-0000000000a3")
	CAT_EARLY_RETIREMENT  = uuid.MustParse("00000000-0000-0000-0000-0000000000a4")
	CAT_HOME_PURCHASE     = uuid.MustParse("00000000-0000-0000-0000-0000000000a5")
	CAT_EDUCATION         = uuid.MustParse("00000000-0000-0000-0000-0000000000a6")
	CAT_TRAVEL            = uuid.MustParse("00000000-0000-0000-0000-0000000000a7")
	CAT_CHARITABLE_GIVING = uuid.MustParse("00000000-0000-0000-0000-0000000000a8")
	CAT_CUSTOM            = uuid.MustParse("00000000-0000-0000-0000-0000000000a9")
)

// CatalogueSeeder ensures the built-in goal categories exist
type CatalogueSeeder struct {
	repo domain.CategoryRepository
}

// NewCatalogueSeeder creates a new CatalogueSeeder instance
func NewCatalogueSeeder(repo domain.CategoryRepository) *CatalogueSeeder {
	return &CatalogueSeeder{repo: repo}
}

// Seed ensures every built-in category exists in the database.
// If a category doesn't exist, it creates it.
func (s *CatalogueSeeder) Seed(ctx context.Context) error {
	catalogue := []domain.GoalCategory{
		{
			ID:             CAT_EMERGENCY_FUND,
			Name:           "Emergency Fund",
			Description:    "Six to nine months of expenses in liquid assets",
			OrderIndex:     1,
			HierarchyLevel: domain.HierarchySecurity,
		},
		{
			ID:             CAT_DEBT_REPAYMENT,
			Name:           "Debt Repayment",
			Description:    "Clearing high-interest loans before investing",
			OrderIndex:     2,
			HierarchyLevel: domain.HierarchyEssential,
		},
		{
			ID:             CAT_RETIREMENT,
			Name:           "Retirement",
			Description:    "Corpus for living expenses after the standard retirement age",
			OrderIndex:     3,
			HierarchyLevel: domain.HierarchyRetirement,
		},
		{
			ID:             CAT_EARLY_RETIREMENT,
			Name:           "Early Retirement",
			Description:    "Financial independence ahead of the standard retirement age",
			OrderIndex:     4,
			HierarchyLevel: domain.HierarchyRetirement,
			ParentID:       &CAT_RETIREMENT,
		},
		{
			ID:             CAT_HOME_PURCHASE,
			Name:           "Home Purchase",
			Description:    "Down payment for buying property",
			OrderIndex:     5,
			HierarchyLevel: domain.HierarchyLifestyle,
		},
		{
			ID:             CAT_EDUCATION,
			Name:           "Education",
			Description:    "Higher education for self or children",
			OrderIndex:     6,
			HierarchyLevel: domain.HierarchyLifestyle,
		},
		{
			ID:             CAT_TRAVEL,
			Name:           "Travel",
			Description:    "Trips and sabbaticals",
			OrderIndex:     7,
			HierarchyLevel: domain.HierarchyLifestyle,
		},
		{
			ID:             CAT_CHARITABLE_GIVING,
			Name:           "Charitable Giving",
			Description:    "Planned donations and endowments",
			OrderIndex:     8,
			HierarchyLevel: domain.HierarchyLegacy,
		},
		{
			ID:             CAT_CUSTOM,
			Name:           "Custom",
			Description:    "Anything that does not fit a built-in category",
			OrderIndex:     9,
			HierarchyLevel: domain.HierarchyCustom,
		},
	}

	for i := range catalogue {
		category := &catalogue[i]

		// Try to get the category by ID
		_, err := s.repo.GetByID(ctx, category.ID)
		if err != nil {
			// Category doesn't exist, create it
			if err := category.Validate(); err != nil {
				return err
			}
			if err := s.repo.Create(ctx, category); err != nil {
				return err
			}
		}
		// If category exists, no action needed
	}

	return nil
}
