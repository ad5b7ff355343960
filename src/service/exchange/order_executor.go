package exchange

import (
	"errors"
	"fmt"
	uuid2 "github.com/google/uuid"
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
	"gitlab.com/open-soft/go-invest-bot/src/validator"
	"log"
)

// OrderExecutor walks a consolidated allocation (or a sell list) strictly
// in order and records one outcome per entry. Failures never abort the
// batch: a rejected or errored order is recorded and the next one runs.
type OrderExecutor struct {
	CurrentBot       *model.Bot
	Binance          client.ExchangeOrderAPIInterface
	BalanceService   BalanceServiceInterface
	FilterService    SymbolFilterProviderInterface
	OrderValidator   validator.OrderValidatorInterface
	ReportRepository repository.ReportStorageInterface
	CallbackManager  service.CallbackManagerInterface
	TimeService      utils.TimeServiceInterface
}

// CheckBalance is the pre-flight gate: without enough free base asset no
// order may be placed at all, so the whole run aborts here.
func (m *OrderExecutor) CheckBalance(totalAmount float64) error {
	balance, err := m.BalanceService.GetAssetBalance(model.BaseAsset, false)

	if err != nil {
		return err
	}

	if balance < totalAmount {
		message := fmt.Sprintf(
			"[%s] Insufficient balance: %.2f available, %.2f required",
			model.BaseAsset,
			balance,
			totalAmount,
		)
		m.CallbackManager.Error(*m.CurrentBot, model.BinanceErrorInsufficientBalance, message)

		return errors.New(message)
	}

	log.Printf("[%s] Balance verified: %.2f available", model.BaseAsset, balance)

	return nil
}

func (m *OrderExecutor) ExecuteBuys(allocations []model.Allocation) model.RunReport {
	report := model.RunReport{
		RunUuid:   uuid2.New().String(),
		Operation: model.RunOperationBuy,
		CreatedAt: m.TimeService.GetNowDateTimeString(),
		Outcomes:  make([]model.OrderOutcome, 0),
	}

	for _, allocation := range allocations {
		report.Add(m.executeBuy(allocation))
	}

	m.finishRun(&report)

	return report
}

func (m *OrderExecutor) executeBuy(allocation model.Allocation) model.OrderOutcome {
	if allocation.IsBaseAsset() {
		log.Printf(
			"[%s] Keeping %.2f on balance, no trade needed",
			allocation.Asset,
			allocation.Amount,
		)

		return model.OrderOutcome{
			Asset:           allocation.Asset,
			Status:          model.OrderOutcomeStatusSkipped,
			Reason:          model.SkipReasonBaseAsset,
			AttemptedAmount: allocation.Amount,
		}
	}

	symbol := allocation.GetSymbol()

	filters, err := m.FilterService.GetSymbolFilters(symbol)

	if err != nil {
		log.Printf("[%s] Filter lookup failed: %s", symbol, err.Error())

		return model.OrderOutcome{
			Asset:           allocation.Asset,
			Status:          model.OrderOutcomeStatusFailed,
			Reason:          err.Error(),
			AttemptedAmount: allocation.Amount,
		}
	}

	check, err := m.OrderValidator.ValidateBuy(symbol, allocation.Amount, filters)

	if err != nil {
		log.Printf("[%s] Price lookup failed: %s", symbol, err.Error())

		return model.OrderOutcome{
			Asset:           allocation.Asset,
			Status:          model.OrderOutcomeStatusFailed,
			Reason:          err.Error(),
			AttemptedAmount: allocation.Amount,
		}
	}

	if check.IsRejected() {
		log.Printf("[%s] Order rejected: %s (%.2f %s)", symbol, check.Reason, allocation.Amount, model.BaseAsset)

		return model.OrderOutcome{
			Asset:           allocation.Asset,
			Status:          model.OrderOutcomeStatusFailed,
			Reason:          check.Reason,
			AttemptedAmount: allocation.Amount,
		}
	}

	order, err := m.Binance.MarketBuy(symbol, allocation.Amount)

	if err != nil {
		return model.OrderOutcome{
			Asset:           allocation.Asset,
			Status:          model.OrderOutcomeStatusFailed,
			Reason:          err.Error(),
			AttemptedAmount: allocation.Amount,
		}
	}

	m.BalanceService.InvalidateBalanceCache(model.BaseAsset)
	m.BalanceService.InvalidateBalanceCache(allocation.Asset)

	if !order.IsFilled() {
		log.Printf("[%s] Order %d is not fully filled, status: %s", symbol, order.OrderId, order.Status)
	}

	log.Printf(
		"[%s] BUY executed | qty: %.8f | spent: %.2f %s | orderId: %d",
		symbol,
		order.ExecutedQty,
		order.CummulativeQuoteQty,
		model.BaseAsset,
		order.OrderId,
	)

	return model.OrderOutcome{
		Asset:            allocation.Asset,
		Status:           model.OrderOutcomeStatusSuccess,
		OrderId:          order.OrderId,
		ExecutedQuantity: order.ExecutedQty,
		SpentAmount:      order.CummulativeQuoteQty,
	}
}

func (m *OrderExecutor) ExecuteSells(assets []model.AssetValue) model.RunReport {
	report := model.RunReport{
		RunUuid:   uuid2.New().String(),
		Operation: model.RunOperationSell,
		CreatedAt: m.TimeService.GetNowDateTimeString(),
		Outcomes:  make([]model.OrderOutcome, 0),
	}

	for _, asset := range assets {
		report.Add(m.executeSell(asset))
	}

	m.finishRun(&report)

	return report
}

func (m *OrderExecutor) executeSell(asset model.AssetValue) model.OrderOutcome {
	symbol := asset.GetSymbol()

	filters, err := m.FilterService.GetSymbolFilters(symbol)

	if err != nil {
		log.Printf("[%s] Filter lookup failed: %s", symbol, err.Error())

		return model.OrderOutcome{
			Asset:             asset.Asset,
			Status:            model.OrderOutcomeStatusFailed,
			Reason:            err.Error(),
			AttemptedQuantity: asset.Free,
		}
	}

	check, err := m.OrderValidator.ValidateSell(symbol, asset.Free, filters)

	if err != nil {
		log.Printf("[%s] Price lookup failed: %s", symbol, err.Error())

		return model.OrderOutcome{
			Asset:             asset.Asset,
			Status:            model.OrderOutcomeStatusFailed,
			Reason:            err.Error(),
			AttemptedQuantity: asset.Free,
		}
	}

	if check.IsRejected() {
		log.Printf("[%s] Sell rejected: %s (qty %.8f)", symbol, check.Reason, asset.Free)

		return model.OrderOutcome{
			Asset:             asset.Asset,
			Status:            model.OrderOutcomeStatusFailed,
			Reason:            check.Reason,
			AttemptedQuantity: asset.Free,
		}
	}

	order, err := m.Binance.MarketSell(symbol, check.Quantity)

	if err != nil {
		return model.OrderOutcome{
			Asset:             asset.Asset,
			Status:            model.OrderOutcomeStatusFailed,
			Reason:            err.Error(),
			AttemptedQuantity: check.Quantity,
		}
	}

	m.BalanceService.InvalidateBalanceCache(model.BaseAsset)
	m.BalanceService.InvalidateBalanceCache(asset.Asset)

	if !order.IsFilled() {
		log.Printf("[%s] Order %d is not fully filled, status: %s", symbol, order.OrderId, order.Status)
	}

	log.Printf(
		"[%s] SELL executed | qty: %.8f | received: %.2f %s | orderId: %d",
		symbol,
		order.ExecutedQty,
		order.CummulativeQuoteQty,
		model.BaseAsset,
		order.OrderId,
	)

	return model.OrderOutcome{
		Asset:            asset.Asset,
		Status:           model.OrderOutcomeStatusSuccess,
		OrderId:          order.OrderId,
		ExecutedQuantity: order.ExecutedQty,
		ReceivedAmount:   order.CummulativeQuoteQty,
	}
}

func (m *OrderExecutor) finishRun(report *model.RunReport) {
	for _, outcome := range report.Outcomes {
		m.CallbackManager.OrderExecuted(*m.CurrentBot, report.Operation, outcome, report.CreatedAt)
	}

	_, err := m.ReportRepository.Create(*report)

	if err != nil {
		log.Printf("[%s] Report is not persisted: %s", report.RunUuid, err.Error())
	}

	log.Printf(
		"[%s] Run completed: %d success, %d skipped, %d failed",
		report.RunUuid,
		report.GetSuccessCount(),
		report.GetSkippedCount(),
		report.GetFailedCount(),
	)
}
