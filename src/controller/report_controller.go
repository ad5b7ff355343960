package controller

import (
	"encoding/json"
	"fmt"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service/strategy"
	"net/http"
)

type AllocationPreviewRequest struct {
	StrategyName string                  `json:"strategyName"`
	TotalAmount  float64                 `json:"totalAmount"`
	Selections   model.TokenSelectionMap `json:"selections"`
}

type ReportController struct {
	CurrentBot       *model.Bot
	ReportRepository repository.ReportStorageInterface
	AllocationEngine *strategy.AllocationEngine
}

func (c *ReportController) GetReportListAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	encoded, _ := json.Marshal(c.ReportRepository.GetRunReports(20))
	fmt.Fprintf(w, string(encoded))
}

func (c *ReportController) GetLastReportAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	report := c.ReportRepository.GetLastReport()

	if report == nil {
		http.Error(w, "No report is found", http.StatusNotFound)

		return
	}

	encoded, _ := json.Marshal(report)
	fmt.Fprintf(w, string(encoded))
}

// PostAllocationPreviewAction is the pure engine surface: expands a
// strategy + selections into a consolidated allocation without touching
// the exchange.
func (c *ReportController) PostAllocationPreviewAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	var request AllocationPreviewRequest
	err := json.NewDecoder(req.Body).Decode(&request)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if request.TotalAmount <= 0.00 {
		http.Error(w, "totalAmount must be greater than 0", http.StatusBadRequest)

		return
	}

	for _, item := range strategy.GetStrategies() {
		if item.Name != request.StrategyName {
			continue
		}

		if err := item.ValidateSelections(request.Selections); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		allocations := c.AllocationEngine.Consolidate(
			c.AllocationEngine.ComputeAllocations(item, request.TotalAmount, request.Selections),
		)

		encoded, _ := json.Marshal(allocations)
		fmt.Fprintf(w, string(encoded))

		return
	}

	http.Error(w, fmt.Sprintf("Strategy %s is not found", request.StrategyName), http.StatusNotFound)
}
