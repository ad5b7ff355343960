package validator

import (
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
)

type OrderValidatorInterface interface {
	ValidateBuy(symbol string, quoteAmount float64, filters model.SymbolFilters) (model.OrderCheck, error)
	ValidateSell(symbol string, quantity float64, filters model.SymbolFilters) (model.OrderCheck, error)
}

// OrderValidator checks a single order against the exchange trading rules.
// A rejection is a verdict, not an error: the returned error is reserved
// for exchange failures (price lookup).
type OrderValidator struct {
	Binance   client.ExchangePriceAPIInterface
	Formatter *utils.Formatter
}

func (v *OrderValidator) ValidateBuy(symbol string, quoteAmount float64, filters model.SymbolFilters) (model.OrderCheck, error) {
	check := model.OrderCheck{Symbol: symbol}

	if quoteAmount < filters.MinNotional {
		check.Rejected = true
		check.Reason = model.RejectionBelowMinNotional

		return check, nil
	}

	ticker, err := v.Binance.GetTickerPrice(symbol)

	if err != nil {
		return check, err
	}

	check.Price = ticker.Price
	check.Quantity = v.Formatter.FormatQuantityStep(quoteAmount/ticker.Price, filters.StepSize)

	if check.Quantity < filters.MinQuantity {
		check.Rejected = true
		check.Reason = model.RejectionBelowMinQuantity

		return check, nil
	}

	if check.Quantity > filters.MaxQuantity {
		check.Rejected = true
		check.Reason = model.RejectionAboveMaxQuantity

		return check, nil
	}

	return check, nil
}

// ValidateSell starts from a known quantity: normalize first, then make
// sure the notional value still clears the exchange minimum.
func (v *OrderValidator) ValidateSell(symbol string, quantity float64, filters model.SymbolFilters) (model.OrderCheck, error) {
	check := model.OrderCheck{Symbol: symbol}
	check.Quantity = v.Formatter.FormatQuantityStep(quantity, filters.StepSize)

	if check.Quantity < filters.MinQuantity {
		check.Rejected = true
		check.Reason = model.RejectionBelowMinQuantity

		return check, nil
	}

	ticker, err := v.Binance.GetTickerPrice(symbol)

	if err != nil {
		return check, err
	}

	check.Price = ticker.Price

	if check.Quantity*ticker.Price < filters.MinNotional {
		check.Rejected = true
		check.Reason = model.RejectionBelowMinNotional

		return check, nil
	}

	return check, nil
}
