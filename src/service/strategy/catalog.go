package strategy

import "gitlab.com/open-soft/go-invest-bot/src/model"

// GetStrategies returns the static strategy catalog. Strategies are value
// records: the engine never writes effective percentages back, so the same
// catalog is safe to reuse across runs.
func GetStrategies() []model.Strategy {
	return []model.Strategy{
		{
			Name: "Moderate",
			Categories: []model.Category{
				{Name: "Bitcoin", Percentage: 30.00, Options: []string{"BTC"}},
				{Name: "Ethereum", Percentage: 30.00, Options: []string{"ETH"}},
				{Name: "Native Tokens", Percentage: 20.00, Options: []string{"ADA", "XRP"}},
				{Name: "Protocol Tokens", Percentage: 10.00, Options: []string{"CAKE", "GRT"}},
				{Name: "Stablecoin", Percentage: 10.00, Options: []string{"USDC", "PAXG"}},
			},
		},
		{
			Name: "Conservative",
			Categories: []model.Category{
				{Name: "Bitcoin", Percentage: 50.00, Options: []string{"BTC"}},
				{Name: "Ethereum", Percentage: 20.00, Options: []string{"ETH"}},
				{Name: "Stablecoin", Percentage: 30.00, Options: []string{"USDC", "PAXG"}},
			},
		},
	}
}
