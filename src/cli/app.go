package cli

import (
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/service/exchange"
	"gitlab.com/open-soft/go-invest-bot/src/service/strategy"
	"log"
)

type OrderExecutorInterface interface {
	CheckBalance(totalAmount float64) error
	ExecuteBuys(allocations []model.Allocation) model.RunReport
	ExecuteSells(assets []model.AssetValue) model.RunReport
}

// App drives one interactive session: collect choices, preview, confirm,
// execute, report.
type App struct {
	Prompt           *Prompt
	AllocationEngine *strategy.AllocationEngine
	OrderExecutor    OrderExecutorInterface
	BalanceService   exchange.SellableBalanceProviderInterface
}

func (a *App) Run() {
	a.Prompt.PrintHeader()

	switch a.Prompt.SelectAction() {
	case ActionBuy:
		a.RunBuyFlow()
	case ActionTakeProfit:
		a.RunTakeProfitFlow()
	default:
		log.Println("No action selected, exiting")
	}
}

func (a *App) RunBuyFlow() {
	totalAmount := a.Prompt.GetInvestmentAmount()

	if totalAmount <= 0.00 {
		return
	}

	if err := a.OrderExecutor.CheckBalance(totalAmount); err != nil {
		log.Println(err.Error())

		return
	}

	mode, strategies := a.Prompt.SelectStrategyMode(strategy.GetStrategies())

	if len(strategies) == 0 {
		return
	}

	var allocations []model.Allocation

	if mode == StrategyModeCombined {
		selections := make(map[string]model.TokenSelectionMap)

		for _, item := range strategies {
			selections[item.Name] = a.collectSelections(item)
		}

		allocations = a.AllocationEngine.ComputeCombinedAllocations(strategies, totalAmount, selections)
	} else {
		allocations = a.AllocationEngine.ComputeAllocations(
			strategies[0],
			totalAmount,
			a.collectSelections(strategies[0]),
		)
	}

	allocations = a.AllocationEngine.Consolidate(allocations)

	if !a.Prompt.ConfirmExecution(allocations) {
		log.Println("Execution cancelled")

		return
	}

	report := a.OrderExecutor.ExecuteBuys(allocations)
	a.Prompt.DisplayReport(report)
}

func (a *App) RunTakeProfitFlow() {
	values, err := a.BalanceService.GetSellableBalances()

	if err != nil {
		log.Println(err.Error())

		return
	}

	if len(values) == 0 {
		log.Println("No spot balances found")

		return
	}

	a.Prompt.DisplayBalances(values)

	selected := a.Prompt.SelectAssetsToSell(values)

	if len(selected) == 0 {
		log.Println("Nothing selected, exiting")

		return
	}

	if !a.Prompt.ConfirmSells(selected) {
		log.Println("Execution cancelled")

		return
	}

	report := a.OrderExecutor.ExecuteSells(selected)
	a.Prompt.DisplayReport(report)
}

func (a *App) collectSelections(item model.Strategy) model.TokenSelectionMap {
	selections := make(model.TokenSelectionMap)

	for _, category := range item.Categories {
		selected := a.Prompt.SelectTokensForCategory(category)

		if len(selected) > 0 {
			selections[category.Name] = selected
		}
	}

	return selections
}
