package cli

import (
	"bufio"
	"fmt"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"strconv"
	"strings"
)

const ActionBuy = "buy"
const ActionTakeProfit = "take_profit"

// Prompt collects user choices from an interactive terminal session.
// Every numeric input re-prompts on invalid values; a read failure
// (closed stdin) cancels the pending question.
type Prompt struct {
	Reader *bufio.Reader
}

func (p *Prompt) readLine() (string, bool) {
	line, err := p.Reader.ReadString('\n')

	if err != nil && len(line) == 0 {
		return "", false
	}

	return strings.TrimSpace(line), true
}

func (p *Prompt) PrintHeader() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("AUTO INVEST - Binance Spot Market Orders")
	fmt.Println(strings.Repeat("=", 60))
}

func (p *Prompt) SelectAction() string {
	fmt.Println("\nWhat would you like to do?")
	fmt.Println("  [1] BUY - distribute", model.BaseAsset, "across tokens")
	fmt.Println("  [2] TAKE PROFIT - sell holdings back to", model.BaseAsset)

	for {
		fmt.Print("Select action (1 or 2): ")
		choice, ok := p.readLine()

		if !ok {
			return ""
		}

		switch choice {
		case "1":
			return ActionBuy
		case "2":
			return ActionTakeProfit
		}

		fmt.Println("Please enter 1 or 2.")
	}
}

func (p *Prompt) GetInvestmentAmount() float64 {
	for {
		fmt.Printf("Enter the total amount to invest (%s): ", model.BaseAsset)
		input, ok := p.readLine()

		if !ok {
			return 0.00
		}

		amount, err := strconv.ParseFloat(input, 64)

		if err != nil || amount <= 0.00 {
			fmt.Println("Please enter a number greater than 0.")
			continue
		}

		return amount
	}
}

const StrategyModeSingle = "single"
const StrategyModeCombined = "combined"

func (p *Prompt) SelectStrategyMode(strategies []model.Strategy) (string, []model.Strategy) {
	fmt.Println("\nAvailable strategies:")

	for index, item := range strategies {
		fmt.Printf("  [%d] %s\n", index+1, item.Name)
		for _, category := range item.Categories {
			fmt.Printf(
				"      - %s: %.0f%% (%s)\n",
				category.Name,
				category.Percentage.Value(),
				strings.Join(category.Options, ", "),
			)
		}
	}

	combinedOption := len(strategies) + 1
	fmt.Printf("  [%d] ALL STRATEGIES (capital split evenly)\n", combinedOption)

	for {
		fmt.Printf("Select strategy (1-%d): ", combinedOption)
		input, ok := p.readLine()

		if !ok {
			return "", nil
		}

		index, err := strconv.Atoi(input)

		if err != nil || index < 1 || index > combinedOption {
			fmt.Println("Invalid option.")
			continue
		}

		if index == combinedOption {
			return StrategyModeCombined, strategies
		}

		return StrategyModeSingle, []model.Strategy{strategies[index-1]}
	}
}

// SelectTokensForCategory returns the user's picks for one category.
// An empty result means the category is skipped and its percentage
// will be redistributed.
func (p *Prompt) SelectTokensForCategory(category model.Category) []model.TokenSelection {
	fmt.Printf("\nCategory: %s (%.0f%%)\n", category.Name, category.Percentage.Value())

	for index, option := range category.Options {
		fmt.Printf("  [%d] %s\n", index+1, option)
	}

	if len(category.Options) == 1 {
		fmt.Printf("  [1] Invest in %s (100%%)\n  [2] Skip this category\n", category.Options[0])

		for {
			fmt.Print("Select mode (1 or 2): ")
			choice, ok := p.readLine()

			if !ok || choice == "2" {
				fmt.Println("Category skipped, its percentage will be redistributed.")
				return nil
			}

			if choice == "1" {
				return []model.TokenSelection{{Token: category.Options[0], DistributionPercentage: 100.00}}
			}

			fmt.Println("Please enter 1 or 2.")
		}
	}

	fmt.Println("  [1] Pick ONE token (100%)")
	fmt.Println("  [2] Split between SEVERAL tokens")
	fmt.Println("  [3] Skip this category")

	for {
		fmt.Print("Select mode (1, 2 or 3): ")
		choice, ok := p.readLine()

		if !ok || choice == "3" {
			fmt.Println("Category skipped, its percentage will be redistributed.")
			return nil
		}

		if choice == "1" {
			return p.selectSingleToken(category)
		}

		if choice == "2" {
			return p.selectTokenSplit(category)
		}

		fmt.Println("Please enter 1, 2 or 3.")
	}
}

func (p *Prompt) selectSingleToken(category model.Category) []model.TokenSelection {
	for {
		fmt.Printf("Select token for %s: ", category.Name)
		input, ok := p.readLine()

		if !ok {
			return nil
		}

		index, err := strconv.Atoi(input)

		if err != nil || index < 1 || index > len(category.Options) {
			fmt.Println("Invalid option.")
			continue
		}

		return []model.TokenSelection{{Token: category.Options[index-1], DistributionPercentage: 100.00}}
	}
}

// selectTokenSplit collects a multi-token distribution that always totals
// exactly 100: the remainder auto-assigns to the last pick when the user
// stops early or runs out of options.
func (p *Prompt) selectTokenSplit(category model.Category) []model.TokenSelection {
	selections := make([]model.TokenSelection, 0)
	remaining := 100.00
	available := append([]string{}, category.Options...)

	fmt.Printf("Distribution for %s (must total 100%%):\n", category.Name)

	for remaining > 0.00 && len(available) > 0 {
		fmt.Printf("Remaining: %.1f%%. Tokens:\n", remaining)
		for index, option := range available {
			fmt.Printf("  [%d] %s\n", index+1, option)
		}

		fmt.Print("Select token: ")
		input, ok := p.readLine()

		if !ok {
			break
		}

		index, err := strconv.Atoi(input)

		if err != nil || index < 1 || index > len(available) {
			fmt.Println("Invalid option.")
			continue
		}

		token := available[index-1]
		percentage := remaining

		if len(available) > 1 {
			fmt.Printf("Percentage for %s (max %.1f%%, 'r' for the rest): ", token, remaining)
			percentageInput, ok := p.readLine()

			if !ok {
				break
			}

			if percentageInput != "r" {
				percentage, err = strconv.ParseFloat(percentageInput, 64)

				if err != nil || percentage <= 0.00 || percentage > remaining {
					fmt.Printf("Percentage must be between 0 and %.1f.\n", remaining)
					continue
				}
			}
		} else {
			fmt.Printf("Assigning remaining %.1f%% to %s\n", remaining, token)
		}

		selections = append(selections, model.TokenSelection{
			Token:                  token,
			DistributionPercentage: model.Percent(percentage),
		})
		remaining -= percentage
		available = remove(available, token)

		if remaining > 0.00 && len(available) > 0 && !p.confirm("Add another token?") {
			break
		}
	}

	// distribution must always total 100
	if remaining > 0.00 && len(selections) > 0 {
		last := len(selections) - 1
		selections[last].DistributionPercentage += model.Percent(remaining)
		fmt.Printf("Remaining %.1f%% assigned to %s\n", remaining, selections[last].Token)
	}

	return selections
}

func (p *Prompt) ConfirmExecution(allocations []model.Allocation) bool {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("ORDERS TO EXECUTE")
	fmt.Println(strings.Repeat("=", 60))

	total := 0.00
	tradeCount := 0

	for _, allocation := range allocations {
		if allocation.IsBaseAsset() {
			fmt.Printf("  %s: %.2f %s (kept on balance)\n", allocation.Asset, allocation.Amount, model.BaseAsset)
		} else {
			fmt.Printf("  %s: %.2f %s\n", allocation.Asset, allocation.Amount, model.BaseAsset)
			tradeCount++
		}

		total += allocation.Amount
	}

	fmt.Printf("TOTAL: %.2f %s, orders: %d\n", total, model.BaseAsset, tradeCount)

	return p.confirm("Confirm execution?")
}

func (p *Prompt) DisplayBalances(values []model.AssetValue) {
	fmt.Println("\nSPOT BALANCES")

	totalValue := 0.00
	sellableValue := 0.00

	for _, value := range values {
		status := "sellable"

		if value.CanSell {
			sellableValue += value.BaseValue
		} else {
			status = value.Reason
		}

		totalValue += value.BaseValue

		fmt.Printf(
			"  %-8s | %15.8f | ~%12.2f %s | %s\n",
			value.Asset,
			value.Free,
			value.BaseValue,
			model.BaseAsset,
			status,
		)
	}

	fmt.Printf("  TOTAL ~%.2f %s, sellable ~%.2f %s\n", totalValue, model.BaseAsset, sellableValue, model.BaseAsset)
}

func (p *Prompt) SelectAssetsToSell(values []model.AssetValue) []model.AssetValue {
	sellable := make([]model.AssetValue, 0)

	for _, value := range values {
		if value.CanSell {
			sellable = append(sellable, value)
		}
	}

	if len(sellable) == 0 {
		fmt.Printf("No assets sellable to %s.\n", model.BaseAsset)
		return nil
	}

	fmt.Printf("\nAssets available to sell to %s:\n", model.BaseAsset)

	for index, value := range sellable {
		fmt.Printf("  [%d] %s: %.8f (~%.2f %s)\n", index+1, value.Asset, value.Free, value.BaseValue, model.BaseAsset)
	}

	fmt.Println("  [A] Sell ALL listed assets")
	fmt.Println("  [C] Cancel")

	for {
		fmt.Print("Select option (numbers comma separated, 'A' or 'C'): ")
		input, ok := p.readLine()

		if !ok {
			return nil
		}

		choice := strings.ToUpper(input)

		if choice == "C" {
			return nil
		}

		if choice == "A" {
			return sellable
		}

		selected := make([]model.AssetValue, 0)
		valid := true

		for _, part := range strings.Split(choice, ",") {
			index, err := strconv.Atoi(strings.TrimSpace(part))

			if err != nil || index < 1 || index > len(sellable) {
				valid = false
				break
			}

			selected = append(selected, sellable[index-1])
		}

		if valid && len(selected) > 0 {
			return selected
		}

		fmt.Println("Please enter numbers, 'A' or 'C'.")
	}
}

func (p *Prompt) ConfirmSells(assets []model.AssetValue) bool {
	fmt.Println("\nSELLS TO EXECUTE")

	totalEstimated := 0.00

	for _, asset := range assets {
		totalEstimated += asset.BaseValue
		fmt.Printf("  %s: %.8f -> ~%.2f %s\n", asset.Asset, asset.Free, asset.BaseValue, model.BaseAsset)
	}

	fmt.Printf("ESTIMATED TOTAL: ~%.2f %s (actual amount depends on market price)\n", totalEstimated, model.BaseAsset)

	return p.confirm(fmt.Sprintf("Confirm selling to %s?", model.BaseAsset))
}

func (p *Prompt) DisplayReport(report model.RunReport) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("EXECUTION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case model.OrderOutcomeStatusSuccess:
			if report.Operation == model.RunOperationSell {
				fmt.Printf(
					"  OK %s: sold %.8f -> %.2f %s\n",
					outcome.Asset,
					outcome.ExecutedQuantity,
					outcome.ReceivedAmount,
					model.BaseAsset,
				)
			} else {
				fmt.Printf(
					"  OK %s: bought %.8f for %.2f %s\n",
					outcome.Asset,
					outcome.ExecutedQuantity,
					outcome.SpentAmount,
					model.BaseAsset,
				)
			}
		case model.OrderOutcomeStatusSkipped:
			fmt.Printf("  -- %s: kept (%s)\n", outcome.Asset, outcome.Reason)
		default:
			fmt.Printf("  !! %s: failed - %s\n", outcome.Asset, outcome.Reason)
		}
	}

	fmt.Printf(
		"Success: %d, skipped: %d, failed: %d\n",
		report.GetSuccessCount(),
		report.GetSkippedCount(),
		report.GetFailedCount(),
	)

	if report.Operation == model.RunOperationSell {
		fmt.Printf("%s received: %.2f\n", model.BaseAsset, report.GetTotalReceived())
	} else {
		fmt.Printf("%s spent: %.2f\n", model.BaseAsset, report.GetTotalSpent())
	}
}

func (p *Prompt) confirm(question string) bool {
	for {
		fmt.Printf("%s (y/n): ", question)
		input, ok := p.readLine()

		if !ok {
			return false
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}

		fmt.Println("Please answer 'y' or 'n'.")
	}
}

func remove(options []string, token string) []string {
	result := make([]string, 0)

	for _, option := range options {
		if option != token {
			result = append(result, option)
		}
	}

	return result
}
