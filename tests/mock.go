package tests

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-invest-bot/src/model"
)

type ExchangePriceAPIMock struct {
	mock.Mock
}

func (m *ExchangePriceAPIMock) GetTickerPrice(symbol string) (model.WSTickerPrice, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.WSTickerPrice), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetExchangeData(symbols []string) (*model.ExchangeInfo, error) {
	args := m.Called(symbols)
	return args.Get(0).(*model.ExchangeInfo), args.Error(1)
}

type ExchangeOrderAPIMock struct {
	mock.Mock
}

func (m *ExchangeOrderAPIMock) MarketBuy(symbol string, quoteAmount float64) (model.BinanceOrder, error) {
	args := m.Called(symbol, quoteAmount)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}
func (m *ExchangeOrderAPIMock) MarketSell(symbol string, quantity float64) (model.BinanceOrder, error) {
	args := m.Called(symbol, quantity)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

type ExchangeAccountAPIMock struct {
	mock.Mock
}

func (m *ExchangeAccountAPIMock) GetAccountStatus() (*model.AccountStatus, error) {
	args := m.Called()
	return args.Get(0).(*model.AccountStatus), args.Error(1)
}

type SymbolFilterProviderMock struct {
	mock.Mock
}

func (m *SymbolFilterProviderMock) GetSymbolFilters(symbol string) (model.SymbolFilters, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.SymbolFilters), args.Error(1)
}

type BalanceServiceMock struct {
	mock.Mock
}

func (m *BalanceServiceMock) GetAssetBalance(asset string, cache bool) (float64, error) {
	args := m.Called(asset, cache)
	return args.Get(0).(float64), args.Error(1)
}
func (m *BalanceServiceMock) InvalidateBalanceCache(asset string) {
	_ = m.Called(asset)
}

type OrderValidatorMock struct {
	mock.Mock
}

func (m *OrderValidatorMock) ValidateBuy(symbol string, quoteAmount float64, filters model.SymbolFilters) (model.OrderCheck, error) {
	args := m.Called(symbol, quoteAmount, filters)
	return args.Get(0).(model.OrderCheck), args.Error(1)
}
func (m *OrderValidatorMock) ValidateSell(symbol string, quantity float64, filters model.SymbolFilters) (model.OrderCheck, error) {
	args := m.Called(symbol, quantity, filters)
	return args.Get(0).(model.OrderCheck), args.Error(1)
}

type ReportStorageMock struct {
	mock.Mock
	savedReport model.RunReport
}

func (m *ReportStorageMock) Create(report model.RunReport) (*int64, error) {
	m.savedReport = report
	args := m.Called(report)
	id := int64(args.Int(0))
	return &id, args.Error(1)
}
func (m *ReportStorageMock) GetRunReports(limit int64) []model.RunReport {
	args := m.Called(limit)
	return args.Get(0).([]model.RunReport)
}
func (m *ReportStorageMock) GetLastReport() *model.RunReport {
	args := m.Called()
	report := args.Get(0)
	if report == nil {
		return nil
	}
	return report.(*model.RunReport)
}

type BotRepositoryMock struct {
	mock.Mock
}

func (m *BotRepositoryMock) GetCurrentBot() *model.Bot {
	args := m.Called()
	bot := args.Get(0)
	if bot == nil {
		return nil
	}
	return bot.(*model.Bot)
}
func (m *BotRepositoryMock) Create(bot model.Bot) error {
	args := m.Called(bot)
	return args.Error(0)
}

type CallbackManagerMock struct {
	mock.Mock
}

func (m *CallbackManagerMock) Error(bot model.Bot, code string, message string) {
	_ = m.Called(bot, code, message)
}
func (m *CallbackManagerMock) OrderExecuted(bot model.Bot, operation string, outcome model.OrderOutcome, dateTime string) {
	_ = m.Called(bot, operation, outcome, dateTime)
}

type TimeServiceMock struct {
	mock.Mock
}

func (m *TimeServiceMock) GetNowUnix() int64 {
	args := m.Called()
	return int64(args.Int(0))
}
func (m *TimeServiceMock) GetNowDateTimeString() string {
	args := m.Called()
	return args.String(0)
}

type SellableBalanceProviderMock struct {
	mock.Mock
}

func (m *SellableBalanceProviderMock) GetSellableBalances() ([]model.AssetValue, error) {
	args := m.Called()
	return args.Get(0).([]model.AssetValue), args.Error(1)
}
