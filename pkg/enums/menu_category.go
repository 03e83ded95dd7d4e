package enums

import "fmt"

// MenuCategory represents the closed set of catalog categories.
type MenuCategory string

const (
	MenuCategoryBurger MenuCategory = "burger"
	MenuCategorySide   MenuCategory = "side"
	MenuCategoryDrink  MenuCategory = "drink"
	MenuCategoryCombo  MenuCategory = "combo"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryBurger,
	MenuCategorySide,
	MenuCategoryDrink,
	MenuCategoryCombo,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}
