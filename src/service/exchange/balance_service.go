package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"log"
	"sort"
	"strconv"
	"time"
)

type BalanceServiceInterface interface {
	GetAssetBalance(asset string, cache bool) (float64, error)
	InvalidateBalanceCache(asset string)
}

type SellableBalanceProviderInterface interface {
	GetSellableBalances() ([]model.AssetValue, error)
}

type BalanceService struct {
	RDB           *redis.Client
	Ctx           *context.Context
	CurrentBot    *model.Bot
	Binance       client.ExchangeAccountAPIInterface
	PriceAPI      client.ExchangePriceAPIInterface
	FilterService SymbolFilterProviderInterface
}

func (b *BalanceService) InvalidateBalanceCache(asset string) {
	b.RDB.Del(*b.Ctx, b.getBalanceCacheKey(asset))
	b.RDB.Del(*b.Ctx, b.getAccountCacheKey())
}

func (b *BalanceService) GetAssetBalance(asset string, cache bool) (float64, error) {
	cached := b.RDB.Get(*b.Ctx, b.getBalanceCacheKey(asset)).Val()

	if len(cached) > 0 && cache {
		balanceCached, err := strconv.ParseFloat(cached, 64)

		if err == nil {
			return balanceCached, nil
		}
	}

	accountInfo, err := b.Binance.GetAccountStatus()

	if err != nil {
		return 0.00, err
	}

	for _, assetBalance := range accountInfo.Balances {
		if assetBalance.Asset == asset {
			b.RDB.Set(*b.Ctx, b.getBalanceCacheKey(asset), assetBalance.Free, time.Minute)
			return assetBalance.Free, nil
		}
	}

	return 0.00, nil
}

// GetBalances returns every spot balance with a non-zero total, read
// through a short-lived account cache.
func (b *BalanceService) GetBalances() ([]model.Balance, error) {
	cached := b.RDB.Get(*b.Ctx, b.getAccountCacheKey()).Val()

	var account *model.AccountStatus

	if len(cached) > 0 {
		var cachedAccount model.AccountStatus
		if err := json.Unmarshal([]byte(cached), &cachedAccount); err == nil {
			account = &cachedAccount
		}
	}

	if account == nil {
		fresh, err := b.Binance.GetAccountStatus()

		if err != nil {
			return nil, err
		}

		if encoded, err := json.Marshal(fresh); err == nil {
			b.RDB.Set(*b.Ctx, b.getAccountCacheKey(), string(encoded), time.Minute)
		}

		account = fresh
	}

	balances := make([]model.Balance, 0)

	for _, balance := range account.Balances {
		if balance.GetTotal() == 0.00 {
			continue
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

// GetSellableBalances values every holding against the base asset and
// marks whether it can be sold: the base asset and stablecoins are kept,
// assets without a direct pair or under min notional are listed only.
// Sorted by value descending.
func (b *BalanceService) GetSellableBalances() ([]model.AssetValue, error) {
	balances, err := b.GetBalances()

	if err != nil {
		return nil, err
	}

	values := make([]model.AssetValue, 0)

	for _, balance := range balances {
		if balance.Asset != model.BaseAsset && !model.IsStablecoin(balance.Asset) && balance.Free <= 0.00 {
			continue
		}

		values = append(values, b.ValueBalance(balance))
	}

	sort.SliceStable(values, func(i int, j int) bool {
		return values[i].BaseValue > values[j].BaseValue
	})

	return values, nil
}

// ValueBalance prices one holding against the base asset and decides
// whether it can be sold. The base asset and stablecoins are valued 1:1
// and kept; everything else needs a direct pair, known filters and a
// value clearing the exchange minimum.
func (b *BalanceService) ValueBalance(balance model.Balance) model.AssetValue {
	value := model.AssetValue{
		Asset:  balance.Asset,
		Free:   balance.Free,
		Locked: balance.Locked,
	}

	if balance.Asset == model.BaseAsset {
		value.BaseValue = balance.Free
		value.Reason = model.AssetNotSellableBaseAsset

		return value
	}

	if model.IsStablecoin(balance.Asset) {
		value.BaseValue = balance.Free
		value.Reason = model.AssetNotSellableStablecoin

		return value
	}

	ticker, err := b.PriceAPI.GetTickerPrice(value.GetSymbol())

	if err != nil {
		// no direct pair: value against USDT for display only
		usdtTicker, usdtErr := b.PriceAPI.GetTickerPrice(balance.Asset + "USDT")

		if usdtErr != nil {
			log.Printf("[%s] No price available: %s", balance.Asset, err.Error())
			value.Reason = model.AssetNotSellableNoPrice

			return value
		}

		value.BaseValue = balance.Free * usdtTicker.Price
		value.Reason = model.AssetNotSellableNoDirectPair

		return value
	}

	value.Price = ticker.Price
	value.BaseValue = balance.Free * ticker.Price

	filters, err := b.FilterService.GetSymbolFilters(value.GetSymbol())

	if err != nil {
		log.Printf("[%s] Filter lookup failed: %s", value.GetSymbol(), err.Error())
		value.Reason = model.AssetNotSellableFiltersUnavailable

		return value
	}

	if value.BaseValue >= filters.MinNotional {
		value.CanSell = true
	} else {
		value.Reason = model.AssetNotSellableBelowMinNotional
	}

	return value
}

func (b *BalanceService) getBalanceCacheKey(asset string) string {
	return fmt.Sprintf("balance-%s-bot-%d", asset, b.CurrentBot.Id)
}

func (b *BalanceService) getAccountCacheKey() string {
	return fmt.Sprintf("account-status-bot-%d", b.CurrentBot.Id)
}
