package model

// Conservative defaults used when the exchange does not expose a filter
// for a symbol, same values the exchange applies to most spot pairs.
const DefaultMinNotional = 10.00
const DefaultMinQuantity = 0.00001
const DefaultMaxQuantity = 99999999.00
const DefaultStepSize = 0.00001

type SymbolFilters struct {
	Symbol      string  `json:"symbol"`
	MinNotional float64 `json:"minNotional"`
	MinQuantity float64 `json:"minQty"`
	MaxQuantity float64 `json:"maxQty"`
	StepSize    float64 `json:"stepSize"`
}

func NewSymbolFilters(exchangeSymbol ExchangeSymbol) SymbolFilters {
	filters := SymbolFilters{
		Symbol:      exchangeSymbol.Symbol,
		MinNotional: DefaultMinNotional,
		MinQuantity: DefaultMinQuantity,
		MaxQuantity: DefaultMaxQuantity,
		StepSize:    DefaultStepSize,
	}

	for _, filter := range exchangeSymbol.Filters {
		switch filter.FilterType {
		case BinanceExchangeFilterTypeNotional, BinanceExchangeFilterTypeMinNotional:
			if filter.MinNotional != nil {
				filters.MinNotional = *filter.MinNotional
			}
		case BinanceExchangeFilterTypeLotSize:
			if filter.MinQuantity != nil {
				filters.MinQuantity = *filter.MinQuantity
			}
			if filter.MaxQuantity != nil {
				filters.MaxQuantity = *filter.MaxQuantity
			}
			if filter.StepSize != nil {
				filters.StepSize = *filter.StepSize
			}
		}
	}

	return filters
}
