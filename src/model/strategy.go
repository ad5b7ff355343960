package model

import (
	"errors"
	"fmt"
	"math"
)

type TokenSelection struct {
	Token                  string  `json:"token"`
	DistributionPercentage Percent `json:"distributionPercentage"`
}

type Category struct {
	Name       string   `json:"name"`
	Percentage Percent  `json:"percentage"`
	Options    []string `json:"options"`
}

func (c Category) HasOption(token string) bool {
	for _, option := range c.Options {
		if option == token {
			return true
		}
	}

	return false
}

type Strategy struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

func (s Strategy) GetTotalPercentage() Percent {
	total := Percent(0.00)

	for _, category := range s.Categories {
		total += category.Percentage
	}

	return total
}

// TokenSelectionMap holds the user choices per category name. A category
// without an entry (or with an empty selection list) is skipped and its
// percentage is redistributed across the remaining categories.
type TokenSelectionMap map[string][]TokenSelection

func (s Strategy) ValidateSelections(selections TokenSelectionMap) error {
	for _, category := range s.Categories {
		selected, ok := selections[category.Name]
		if !ok || len(selected) == 0 {
			continue
		}

		distributionTotal := Percent(0.00)

		for _, selection := range selected {
			if !category.HasOption(selection.Token) {
				return errors.New(fmt.Sprintf(
					"[%s] Token %s is not an option of category %s",
					s.Name,
					selection.Token,
					category.Name,
				))
			}

			distributionTotal += selection.DistributionPercentage
		}

		// float sums like 33.3+33.3+33.4 miss 100 by an ulp
		if math.Abs(distributionTotal.Value()-100.00) > 1e-9 {
			return errors.New(fmt.Sprintf(
				"[%s] Distribution of category %s must sum to 100, got %.2f",
				s.Name,
				category.Name,
				distributionTotal.Value(),
			))
		}
	}

	return nil
}
