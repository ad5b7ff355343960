package model

const OrderOutcomeStatusSuccess = "success"
const OrderOutcomeStatusSkipped = "skipped"
const OrderOutcomeStatusFailed = "failed"

const RejectionBelowMinNotional = "below minimum order value"
const RejectionBelowMinQuantity = "below minimum quantity"
const RejectionAboveMaxQuantity = "above maximum quantity"
const SkipReasonBaseAsset = "base asset, no trade needed"

// OrderCheck is the validator verdict for a single order. Rejections are
// values, not errors: the executor records them and moves on.
type OrderCheck struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Rejected bool    `json:"rejected"`
	Reason   string  `json:"reason"`
}

func (c OrderCheck) IsRejected() bool {
	return c.Rejected
}

type OrderOutcome struct {
	Asset             string  `json:"asset"`
	Status            string  `json:"status"`
	Reason            string  `json:"reason,omitempty"`
	OrderId           int64   `json:"orderId,omitempty"`
	ExecutedQuantity  float64 `json:"executedQty,omitempty"`
	SpentAmount       float64 `json:"spentAmount,omitempty"`
	ReceivedAmount    float64 `json:"receivedAmount,omitempty"`
	AttemptedAmount   float64 `json:"attemptedAmount,omitempty"`
	AttemptedQuantity float64 `json:"attemptedQty,omitempty"`
}

func (o OrderOutcome) IsSuccess() bool {
	return o.Status == OrderOutcomeStatusSuccess
}

const RunOperationBuy = "BUY"
const RunOperationSell = "SELL"

type RunReport struct {
	RunUuid   string         `json:"runUuid"`
	Operation string         `json:"operation"`
	CreatedAt string         `json:"createdAt"`
	Outcomes  []OrderOutcome `json:"outcomes"`
}

func (r *RunReport) Add(outcome OrderOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

func (r *RunReport) GetSuccessCount() int64 {
	return r.countByStatus(OrderOutcomeStatusSuccess)
}

func (r *RunReport) GetSkippedCount() int64 {
	return r.countByStatus(OrderOutcomeStatusSkipped)
}

func (r *RunReport) GetFailedCount() int64 {
	return r.countByStatus(OrderOutcomeStatusFailed)
}

func (r *RunReport) GetTotalSpent() float64 {
	total := 0.00

	for _, outcome := range r.Outcomes {
		total += outcome.SpentAmount
	}

	return total
}

func (r *RunReport) GetTotalReceived() float64 {
	total := 0.00

	for _, outcome := range r.Outcomes {
		total += outcome.ReceivedAmount
	}

	return total
}

func (r *RunReport) countByStatus(status string) int64 {
	count := int64(0)

	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			count++
		}
	}

	return count
}
