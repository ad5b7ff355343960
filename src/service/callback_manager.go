package service

import (
	"encoding/json"
	"fmt"
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"log"
)

type CallbackManagerInterface interface {
	Error(bot model.Bot, code string, message string)
	OrderExecuted(bot model.Bot, operation string, outcome model.OrderOutcome, dateTime string)
}

// CallbackManager posts run notifications to an optional webhook.
// With an empty host every call is a no-op.
type CallbackManager struct {
	CallbackHost string
	HttpClient   *client.HttpClient
}

func (t *CallbackManager) Error(bot model.Bot, code string, message string) {
	if len(t.CallbackHost) == 0 {
		return
	}

	encoded, _ := json.Marshal(model.ErrorNotification{
		BotId:        bot.Id,
		ErrorCode:    code,
		ErrorMessage: message,
	})

	_, err := t.HttpClient.Post(fmt.Sprintf("%s/callback/error", t.CallbackHost), encoded, map[string]string{})
	if err != nil {
		log.Printf("[%s] Error notification failed: %s", code, err.Error())
	}
}

func (t *CallbackManager) OrderExecuted(bot model.Bot, operation string, outcome model.OrderOutcome, dateTime string) {
	if len(t.CallbackHost) == 0 {
		return
	}

	amount := outcome.SpentAmount
	if operation == model.RunOperationSell {
		amount = outcome.ReceivedAmount
	}

	encoded, _ := json.Marshal(model.OrderNotification{
		BotId:            bot.Id,
		Asset:            outcome.Asset,
		Operation:        operation,
		Status:           outcome.Status,
		ExecutedQuantity: outcome.ExecutedQuantity,
		Amount:           amount,
		DateTime:         dateTime,
	})

	_, err := t.HttpClient.Post(fmt.Sprintf("%s/callback/order", t.CallbackHost), encoded, map[string]string{})
	if err != nil {
		log.Printf("[%s] Order notification failed: %s", outcome.Asset, err.Error())
	}
}
