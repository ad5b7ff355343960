package model

type ErrorNotification struct {
	BotId        int64  `json:"bot"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type OrderNotification struct {
	BotId            int64   `json:"bot"`
	Asset            string  `json:"asset"`
	Operation        string  `json:"operation"`
	Status           string  `json:"status"`
	ExecutedQuantity float64 `json:"executedQty"`
	Amount           float64 `json:"amount"`
	DateTime         string  `json:"dateTime"`
}
