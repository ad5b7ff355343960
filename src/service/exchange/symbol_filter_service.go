package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"log"
	"time"
)

type SymbolFilterProviderInterface interface {
	GetSymbolFilters(symbol string) (model.SymbolFilters, error)
}

// SymbolFilterService owns the per-run symbol filter cache. Filters are
// immutable once fetched; the map is populated lazily and has no eviction,
// bounded by the handful of symbols a run touches.
type SymbolFilterService struct {
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
	Binance    client.ExchangePriceAPIInterface
	Cache      map[string]model.SymbolFilters
}

func (s *SymbolFilterService) GetSymbolFilters(symbol string) (model.SymbolFilters, error) {
	if filters, ok := s.Cache[symbol]; ok {
		return filters, nil
	}

	cached := s.RDB.Get(*s.Ctx, s.getCacheKey(symbol)).Val()

	if len(cached) > 0 {
		var filters model.SymbolFilters
		err := json.Unmarshal([]byte(cached), &filters)

		if err == nil {
			s.Cache[symbol] = filters
			return filters, nil
		}
	}

	exchangeInfo, err := s.Binance.GetExchangeData([]string{symbol})

	if err != nil {
		return model.SymbolFilters{}, err
	}

	for _, exchangeSymbol := range exchangeInfo.Symbols {
		if exchangeSymbol.Symbol != symbol {
			continue
		}

		if !exchangeSymbol.IsTrading() {
			log.Printf("[%s] Symbol is not trading, status: %s", symbol, exchangeSymbol.Status)
		}

		filters := model.NewSymbolFilters(exchangeSymbol)
		s.Cache[symbol] = filters

		encoded, err := json.Marshal(filters)
		if err == nil {
			s.RDB.Set(*s.Ctx, s.getCacheKey(symbol), string(encoded), time.Hour)
		}

		return filters, nil
	}

	log.Printf("[%s] Exchange info has no such symbol, using default filters", symbol)

	filters := model.SymbolFilters{
		Symbol:      symbol,
		MinNotional: model.DefaultMinNotional,
		MinQuantity: model.DefaultMinQuantity,
		MaxQuantity: model.DefaultMaxQuantity,
		StepSize:    model.DefaultStepSize,
	}
	s.Cache[symbol] = filters

	return filters, nil
}

func (s *SymbolFilterService) getCacheKey(symbol string) string {
	return fmt.Sprintf("symbol-filters-%s-bot-%d", symbol, s.CurrentBot.Id)
}
