package strategy

import (
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
	"log"
	"sort"
	"strings"
)

type AllocationEngine struct {
	Formatter *utils.Formatter
}

// ComputeAllocations expands a strategy and a capital amount into per-token
// allocations. Categories without a selection are skipped and their share
// is redistributed proportionally across the active ones. When everything
// is skipped the whole amount stays in the base asset.
func (e *AllocationEngine) ComputeAllocations(
	strategy model.Strategy,
	totalAmount float64,
	selections model.TokenSelectionMap,
) []model.Allocation {
	allocations := make([]model.Allocation, 0)

	activeCategories := make([]model.Category, 0)
	skippedNames := make([]string, 0)

	for _, category := range strategy.Categories {
		if len(selections[category.Name]) > 0 {
			activeCategories = append(activeCategories, category)
		} else {
			skippedNames = append(skippedNames, category.Name)
		}
	}

	if len(activeCategories) == 0 {
		log.Printf(
			"[%s] All categories skipped, %.2f %s stays on balance",
			strategy.Name,
			totalAmount,
			model.BaseAsset,
		)

		return append(allocations, model.Allocation{Asset: model.BaseAsset, Amount: totalAmount})
	}

	activeTotal := 0.00
	for _, category := range activeCategories {
		activeTotal += category.Percentage.Value()
	}

	redistribute := len(skippedNames) > 0

	if redistribute {
		log.Printf("[%s] Skipped categories: %s", strategy.Name, strings.Join(skippedNames, ", "))
	}

	for _, category := range activeCategories {
		effectivePercentage := category.Percentage.Value()

		if redistribute {
			effectivePercentage = e.Formatter.ComparePercentage(activeTotal, category.Percentage.Value())
			log.Printf(
				"[%s] Category %s rescaled: %.2f%% -> %.2f%%",
				strategy.Name,
				category.Name,
				category.Percentage.Value(),
				effectivePercentage,
			)
		}

		categoryAmount := totalAmount * effectivePercentage / 100.00

		for _, selection := range selections[category.Name] {
			tokenAmount := e.Formatter.TruncateAmount(
				categoryAmount * selection.DistributionPercentage.Value() / 100.00,
			)

			allocations = append(allocations, model.Allocation{
				Asset:  selection.Token,
				Amount: tokenAmount,
			})
		}
	}

	return allocations
}

// ComputeCombinedAllocations splits the capital evenly across strategies,
// truncated to the base asset minor unit per strategy. Residual minor
// units from the truncation stay uninvested.
func (e *AllocationEngine) ComputeCombinedAllocations(
	strategies []model.Strategy,
	totalAmount float64,
	selections map[string]model.TokenSelectionMap,
) []model.Allocation {
	allocations := make([]model.Allocation, 0)
	amountPerStrategy := e.Formatter.TruncateAmount(totalAmount / float64(len(strategies)))

	for _, item := range strategies {
		allocations = append(
			allocations,
			e.ComputeAllocations(item, amountPerStrategy, selections[item.Name])...,
		)
	}

	return allocations
}

// Consolidate merges allocations of the same asset into one order and
// sorts the result by amount descending, so the largest orders execute
// first while the full balance is still available.
func (e *AllocationEngine) Consolidate(allocations []model.Allocation) []model.Allocation {
	consolidated := make([]model.Allocation, 0)
	indexes := make(map[string]int)

	for _, allocation := range allocations {
		if index, ok := indexes[allocation.Asset]; ok {
			consolidated[index].Amount += allocation.Amount
			continue
		}

		indexes[allocation.Asset] = len(consolidated)
		consolidated = append(consolidated, allocation)
	}

	sort.SliceStable(consolidated, func(i int, j int) bool {
		return consolidated[i].Amount > consolidated[j].Amount
	})

	if len(consolidated) < len(allocations) {
		log.Printf("Orders consolidated: %d -> %d", len(allocations), len(consolidated))
	}

	return consolidated
}
