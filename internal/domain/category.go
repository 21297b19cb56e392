package domain

import (
	"github.com/google/uuid"
)

// HierarchyLevel places a goal category in the financial-priority ordering.
// Lower level = higher priority. Security (emergency fund, insurance) always
// outranks lifestyle goals when ordering categories for display.
type HierarchyLevel int

const (
	HierarchySecurity   HierarchyLevel = 1
	HierarchyEssential  HierarchyLevel = 2
	HierarchyRetirement HierarchyLevel = 3
	HierarchyLifestyle  HierarchyLevel = 4
	HierarchyLegacy     HierarchyLevel = 5
	HierarchyCustom     HierarchyLevel = 6
)

// GoalCategory represents a category in the goal catalogue.
// Subcategories carry a ParentID and inherit the parent's hierarchy level.
type GoalCategory struct {
	ID             uuid.UUID
	Name           string
	Description    string
	OrderIndex     int
	HierarchyLevel HierarchyLevel
	ParentID       *uuid.UUID
}

// Validate ensures the category adheres to domain rules
func (c *GoalCategory) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "category name cannot be empty")
	}
	if c.HierarchyLevel < HierarchySecurity || c.HierarchyLevel > HierarchyCustom {
		return NewValidationError("hierarchy_level", "must be between 1 and 6")
	}
	return nil
}

// IsFoundation reports whether the category sits in the Security tier.
// Kept as a derived value for older readers of the goal_categories table;
// HierarchyLevel is the authoritative field.
func (c *GoalCategory) IsFoundation() bool {
	return c.HierarchyLevel == HierarchySecurity
}

// EffectiveLevel returns the level of the category itself, or the parent's
// level when the parent is known. Callers resolve the parent before
// calling this.
func (c *GoalCategory) EffectiveLevel(parent *GoalCategory) HierarchyLevel {
	if c.ParentID != nil && parent != nil {
		return parent.HierarchyLevel
	}
	return c.HierarchyLevel
}
