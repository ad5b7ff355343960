package tests

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/service/exchange"
	"testing"
)

func newExecutorUnderTest() (
	*exchange.OrderExecutor,
	*ExchangeOrderAPIMock,
	*BalanceServiceMock,
	*SymbolFilterProviderMock,
	*OrderValidatorMock,
	*ReportStorageMock,
	*CallbackManagerMock,
) {
	binance := new(ExchangeOrderAPIMock)
	balanceService := new(BalanceServiceMock)
	filterService := new(SymbolFilterProviderMock)
	orderValidator := new(OrderValidatorMock)
	reportStorage := new(ReportStorageMock)
	callbackManager := new(CallbackManagerMock)
	timeService := new(TimeServiceMock)

	timeService.On("GetNowDateTimeString").Return("2026-01-15 12:00:00")

	executor := &exchange.OrderExecutor{
		CurrentBot:       &model.Bot{Id: 1, BotUuid: "2c26f4e0-7d58-4c87-9774-6a7e6bfe8c4d"},
		Binance:          binance,
		BalanceService:   balanceService,
		FilterService:    filterService,
		OrderValidator:   orderValidator,
		ReportRepository: reportStorage,
		CallbackManager:  callbackManager,
		TimeService:      timeService,
	}

	return executor, binance, balanceService, filterService, orderValidator, reportStorage, callbackManager
}

func TestCheckBalanceInsufficient(t *testing.T) {
	assertion := assert.New(t)

	executor, _, balanceService, _, _, _, callbackManager := newExecutorUnderTest()
	balanceService.On("GetAssetBalance", model.BaseAsset, false).Return(50.00, nil)
	callbackManager.On("Error", mock.Anything, model.BinanceErrorInsufficientBalance, mock.Anything)

	err := executor.CheckBalance(100.00)
	assertion.Error(err)
	assertion.Contains(err.Error(), "Insufficient balance")
	callbackManager.AssertCalled(t, "Error", mock.Anything, model.BinanceErrorInsufficientBalance, mock.Anything)
}

func TestCheckBalanceSufficient(t *testing.T) {
	assertion := assert.New(t)

	executor, _, balanceService, _, _, _, _ := newExecutorUnderTest()
	balanceService.On("GetAssetBalance", model.BaseAsset, false).Return(150.00, nil)

	assertion.Nil(executor.CheckBalance(100.00))
}

func TestExecuteBuysFailureDoesNotAbortBatch(t *testing.T) {
	assertion := assert.New(t)

	executor, binance, balanceService, filterService, orderValidator, reportStorage, callbackManager := newExecutorUnderTest()

	filters := model.SymbolFilters{
		MinNotional: 10.00,
		MinQuantity: 0.00001,
		MaxQuantity: 9000.00,
		StepSize:    0.00001,
	}
	filterService.On("GetSymbolFilters", mock.Anything).Return(filters, nil)

	orderValidator.On("ValidateBuy", "BTCUSDC", 300.00, filters).Return(model.OrderCheck{
		Symbol:   "BTCUSDC",
		Quantity: 0.005,
		Price:    60000.00,
	}, nil)
	orderValidator.On("ValidateBuy", "ETHUSDC", 150.00, filters).Return(model.OrderCheck{
		Symbol:   "ETHUSDC",
		Quantity: 0.05,
		Price:    3000.00,
	}, nil)

	// first order fails on the exchange, second must still execute
	binance.On("MarketBuy", "BTCUSDC", 300.00).Return(model.BinanceOrder{}, errors.New("Account has insufficient balance for requested action."))
	binance.On("MarketBuy", "ETHUSDC", 150.00).Return(model.BinanceOrder{
		OrderId:             123,
		Symbol:              "ETHUSDC",
		Status:              "FILLED",
		ExecutedQty:         0.0499,
		CummulativeQuoteQty: 149.97,
	}, nil)

	balanceService.On("InvalidateBalanceCache", mock.Anything)
	callbackManager.On("OrderExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reportStorage.On("Create", mock.Anything).Return(1, nil)

	report := executor.ExecuteBuys([]model.Allocation{
		{Asset: "BTC", Amount: 300.00},
		{Asset: "ETH", Amount: 150.00},
	})

	assertion.Len(report.Outcomes, 2)
	assertion.Equal(model.RunOperationBuy, report.Operation)

	assertion.Equal(model.OrderOutcomeStatusFailed, report.Outcomes[0].Status)
	assertion.Equal("BTC", report.Outcomes[0].Asset)
	assertion.Equal(300.00, report.Outcomes[0].AttemptedAmount)

	assertion.Equal(model.OrderOutcomeStatusSuccess, report.Outcomes[1].Status)
	assertion.Equal(int64(123), report.Outcomes[1].OrderId)
	assertion.Equal(0.0499, report.Outcomes[1].ExecutedQuantity)
	assertion.Equal(149.97, report.Outcomes[1].SpentAmount)

	assertion.Equal(int64(1), report.GetSuccessCount())
	assertion.Equal(int64(1), report.GetFailedCount())
	assertion.Equal(149.97, report.GetTotalSpent())

	// both outcomes must be persisted together
	assertion.Len(reportStorage.savedReport.Outcomes, 2)
}

func TestExecuteBuysBaseAssetIsSkipped(t *testing.T) {
	assertion := assert.New(t)

	executor, binance, balanceService, filterService, orderValidator, reportStorage, callbackManager := newExecutorUnderTest()

	filters := model.SymbolFilters{
		MinNotional: 10.00,
		MinQuantity: 0.00001,
		MaxQuantity: 9000.00,
		StepSize:    0.00001,
	}
	filterService.On("GetSymbolFilters", "BTCUSDC").Return(filters, nil)

	orderValidator.On("ValidateBuy", "BTCUSDC", 90.00, filters).Return(model.OrderCheck{
		Symbol:   "BTCUSDC",
		Quantity: 0.0015,
		Price:    60000.00,
	}, nil)

	binance.On("MarketBuy", "BTCUSDC", 90.00).Return(model.BinanceOrder{
		OrderId:             55,
		Symbol:              "BTCUSDC",
		Status:              "FILLED",
		ExecutedQty:         0.0015,
		CummulativeQuoteQty: 90.00,
	}, nil)

	balanceService.On("InvalidateBalanceCache", mock.Anything)
	callbackManager.On("OrderExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reportStorage.On("Create", mock.Anything).Return(1, nil)

	report := executor.ExecuteBuys([]model.Allocation{
		{Asset: "BTC", Amount: 90.00},
		{Asset: "USDC", Amount: 10.00},
	})

	assertion.Len(report.Outcomes, 2)
	assertion.Equal(model.OrderOutcomeStatusSuccess, report.Outcomes[0].Status)
	assertion.Equal(model.OrderOutcomeStatusSkipped, report.Outcomes[1].Status)
	assertion.Equal(model.SkipReasonBaseAsset, report.Outcomes[1].Reason)

	// the base asset never reaches the exchange
	binance.AssertNotCalled(t, "MarketBuy", "USDCUSDC", mock.Anything)
}

func TestExecuteBuysRejectedOrderIsRecorded(t *testing.T) {
	assertion := assert.New(t)

	executor, binance, _, filterService, orderValidator, reportStorage, callbackManager := newExecutorUnderTest()

	filters := model.SymbolFilters{
		MinNotional: 10.00,
		MinQuantity: 0.00001,
		MaxQuantity: 9000.00,
		StepSize:    0.00001,
	}
	filterService.On("GetSymbolFilters", "GRTUSDC").Return(filters, nil)

	orderValidator.On("ValidateBuy", "GRTUSDC", 5.00, filters).Return(model.OrderCheck{
		Symbol:   "GRTUSDC",
		Rejected: true,
		Reason:   model.RejectionBelowMinNotional,
	}, nil)

	callbackManager.On("OrderExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reportStorage.On("Create", mock.Anything).Return(1, nil)

	report := executor.ExecuteBuys([]model.Allocation{
		{Asset: "GRT", Amount: 5.00},
	})

	assertion.Len(report.Outcomes, 1)
	assertion.Equal(model.OrderOutcomeStatusFailed, report.Outcomes[0].Status)
	assertion.Equal(model.RejectionBelowMinNotional, report.Outcomes[0].Reason)
	assertion.Equal(5.00, report.Outcomes[0].AttemptedAmount)
	binance.AssertNotCalled(t, "MarketBuy", mock.Anything, mock.Anything)
}

func TestExecuteSells(t *testing.T) {
	assertion := assert.New(t)

	executor, binance, balanceService, filterService, orderValidator, reportStorage, callbackManager := newExecutorUnderTest()

	filters := model.SymbolFilters{
		MinNotional: 10.00,
		MinQuantity: 0.0001,
		MaxQuantity: 9000.00,
		StepSize:    0.0001,
	}
	filterService.On("GetSymbolFilters", "ETHUSDC").Return(filters, nil)

	// the validator trims the free balance down to the lot step
	orderValidator.On("ValidateSell", "ETHUSDC", 0.12345678, filters).Return(model.OrderCheck{
		Symbol:   "ETHUSDC",
		Quantity: 0.1234,
		Price:    3000.00,
	}, nil)

	binance.On("MarketSell", "ETHUSDC", 0.1234).Return(model.BinanceOrder{
		OrderId:             321,
		Symbol:              "ETHUSDC",
		Status:              "FILLED",
		ExecutedQty:         0.1234,
		CummulativeQuoteQty: 370.20,
	}, nil)

	balanceService.On("InvalidateBalanceCache", mock.Anything)
	callbackManager.On("OrderExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reportStorage.On("Create", mock.Anything).Return(1, nil)

	report := executor.ExecuteSells([]model.AssetValue{
		{Asset: "ETH", Free: 0.12345678, Price: 3000.00, BaseValue: 370.37, CanSell: true},
	})

	assertion.Equal(model.RunOperationSell, report.Operation)
	assertion.Len(report.Outcomes, 1)
	assertion.Equal(model.OrderOutcomeStatusSuccess, report.Outcomes[0].Status)
	assertion.Equal(0.1234, report.Outcomes[0].ExecutedQuantity)
	assertion.Equal(370.20, report.Outcomes[0].ReceivedAmount)
	assertion.Equal(370.20, report.GetTotalReceived())

	binance.AssertCalled(t, "MarketSell", "ETHUSDC", 0.1234)
}

func TestExecuteSellsRejectionIsolated(t *testing.T) {
	assertion := assert.New(t)

	executor, binance, balanceService, filterService, orderValidator, reportStorage, callbackManager := newExecutorUnderTest()

	filters := model.SymbolFilters{
		MinNotional: 10.00,
		MinQuantity: 0.10,
		MaxQuantity: 9000.00,
		StepSize:    0.10,
	}
	filterService.On("GetSymbolFilters", mock.Anything).Return(filters, nil)

	orderValidator.On("ValidateSell", "ADAUSDC", 20.00, filters).Return(model.OrderCheck{
		Symbol:   "ADAUSDC",
		Quantity: 20.00,
		Rejected: true,
		Reason:   model.RejectionBelowMinNotional,
	}, nil)
	orderValidator.On("ValidateSell", "XRPUSDC", 100.00, filters).Return(model.OrderCheck{
		Symbol:   "XRPUSDC",
		Quantity: 100.00,
		Price:    0.50,
	}, nil)

	binance.On("MarketSell", "XRPUSDC", 100.00).Return(model.BinanceOrder{
		OrderId:             77,
		Symbol:              "XRPUSDC",
		Status:              "FILLED",
		ExecutedQty:         100.00,
		CummulativeQuoteQty: 50.00,
	}, nil)

	balanceService.On("InvalidateBalanceCache", mock.Anything)
	callbackManager.On("OrderExecuted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reportStorage.On("Create", mock.Anything).Return(1, nil)

	report := executor.ExecuteSells([]model.AssetValue{
		{Asset: "ADA", Free: 20.00, CanSell: true},
		{Asset: "XRP", Free: 100.00, CanSell: true},
	})

	assertion.Len(report.Outcomes, 2)
	assertion.Equal(model.OrderOutcomeStatusFailed, report.Outcomes[0].Status)
	assertion.Equal(model.OrderOutcomeStatusSuccess, report.Outcomes[1].Status)
	binance.AssertNotCalled(t, "MarketSell", "ADAUSDC", mock.Anything)
}
