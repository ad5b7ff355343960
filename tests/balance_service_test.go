package tests

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/service/exchange"
	"testing"
)

func TestValueBalanceBaseAssetAndStablecoins(t *testing.T) {
	assertion := assert.New(t)

	balanceService := exchange.BalanceService{
		PriceAPI:      new(ExchangePriceAPIMock),
		FilterService: new(SymbolFilterProviderMock),
	}

	base := balanceService.ValueBalance(model.Balance{Asset: "USDC", Free: 250.00})
	assertion.False(base.CanSell)
	assertion.Equal(250.00, base.BaseValue)
	assertion.Equal(model.AssetNotSellableBaseAsset, base.Reason)

	stable := balanceService.ValueBalance(model.Balance{Asset: "USDT", Free: 80.00})
	assertion.False(stable.CanSell)
	assertion.Equal(80.00, stable.BaseValue)
	assertion.Equal(model.AssetNotSellableStablecoin, stable.Reason)
}

func TestValueBalanceSellable(t *testing.T) {
	assertion := assert.New(t)

	priceAPI := new(ExchangePriceAPIMock)
	priceAPI.On("GetTickerPrice", "ETHUSDC").Return(model.WSTickerPrice{
		Symbol: "ETHUSDC",
		Price:  3000.00,
	}, nil)

	filterService := new(SymbolFilterProviderMock)
	filterService.On("GetSymbolFilters", "ETHUSDC").Return(model.SymbolFilters{
		MinNotional: 10.00,
	}, nil)

	balanceService := exchange.BalanceService{
		PriceAPI:      priceAPI,
		FilterService: filterService,
	}

	value := balanceService.ValueBalance(model.Balance{Asset: "ETH", Free: 0.50})
	assertion.True(value.CanSell)
	assertion.Equal(1500.00, value.BaseValue)
	assertion.Equal(3000.00, value.Price)
}

func TestValueBalanceBelowMinNotional(t *testing.T) {
	assertion := assert.New(t)

	priceAPI := new(ExchangePriceAPIMock)
	priceAPI.On("GetTickerPrice", "ADAUSDC").Return(model.WSTickerPrice{
		Symbol: "ADAUSDC",
		Price:  0.40,
	}, nil)

	filterService := new(SymbolFilterProviderMock)
	filterService.On("GetSymbolFilters", "ADAUSDC").Return(model.SymbolFilters{
		MinNotional: 10.00,
	}, nil)

	balanceService := exchange.BalanceService{
		PriceAPI:      priceAPI,
		FilterService: filterService,
	}

	value := balanceService.ValueBalance(model.Balance{Asset: "ADA", Free: 20.00})
	assertion.False(value.CanSell)
	assertion.Equal(8.00, value.BaseValue)
	assertion.Equal(model.AssetNotSellableBelowMinNotional, value.Reason)
}

func TestValueBalanceFilterLookupFailed(t *testing.T) {
	assertion := assert.New(t)

	priceAPI := new(ExchangePriceAPIMock)
	priceAPI.On("GetTickerPrice", "GRTUSDC").Return(model.WSTickerPrice{
		Symbol: "GRTUSDC",
		Price:  0.20,
	}, nil)

	filterService := new(SymbolFilterProviderMock)
	filterService.On("GetSymbolFilters", "GRTUSDC").Return(model.SymbolFilters{}, errors.New("request timeout"))

	balanceService := exchange.BalanceService{
		PriceAPI:      priceAPI,
		FilterService: filterService,
	}

	// a lookup failure is not a notional verdict
	value := balanceService.ValueBalance(model.Balance{Asset: "GRT", Free: 100.00})
	assertion.False(value.CanSell)
	assertion.Equal(model.AssetNotSellableFiltersUnavailable, value.Reason)
}

func TestValueBalanceUsdtFallback(t *testing.T) {
	assertion := assert.New(t)

	priceAPI := new(ExchangePriceAPIMock)
	priceAPI.On("GetTickerPrice", "CAKEUSDC").Return(model.WSTickerPrice{}, errors.New("Invalid symbol."))
	priceAPI.On("GetTickerPrice", "CAKEUSDT").Return(model.WSTickerPrice{
		Symbol: "CAKEUSDT",
		Price:  2.50,
	}, nil)

	balanceService := exchange.BalanceService{
		PriceAPI:      priceAPI,
		FilterService: new(SymbolFilterProviderMock),
	}

	value := balanceService.ValueBalance(model.Balance{Asset: "CAKE", Free: 10.00})
	assertion.False(value.CanSell)
	assertion.Equal(25.00, value.BaseValue)
	assertion.Equal(model.AssetNotSellableNoDirectPair, value.Reason)
}

func TestValueBalanceNoPrice(t *testing.T) {
	assertion := assert.New(t)

	priceAPI := new(ExchangePriceAPIMock)
	priceAPI.On("GetTickerPrice", "GRTUSDC").Return(model.WSTickerPrice{}, errors.New("Invalid symbol."))
	priceAPI.On("GetTickerPrice", "GRTUSDT").Return(model.WSTickerPrice{}, errors.New("Invalid symbol."))

	balanceService := exchange.BalanceService{
		PriceAPI:      priceAPI,
		FilterService: new(SymbolFilterProviderMock),
	}

	value := balanceService.ValueBalance(model.Balance{Asset: "GRT", Free: 100.00})
	assertion.False(value.CanSell)
	assertion.Equal(0.00, value.BaseValue)
	assertion.Equal(model.AssetNotSellableNoPrice, value.Reason)
}
