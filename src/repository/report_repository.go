package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"log"
	"time"
)

type ReportStorageInterface interface {
	Create(report model.RunReport) (*int64, error)
	GetRunReports(limit int64) []model.RunReport
	GetLastReport() *model.RunReport
}

// ReportRepository persists execution runs and their per-order outcomes.
// Strategy state is never stored, only what actually happened.
type ReportRepository struct {
	DB         *sql.DB
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
}

func (repo *ReportRepository) Create(report model.RunReport) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO invest_runs SET
			uuid = ?,
			operation = ?,
		    bot_id = ?,
			created_at = ?`,
		report.RunUuid,
		report.Operation,
		repo.CurrentBot.Id,
		report.CreatedAt,
	)

	if err != nil {
		log.Println(err)
		return nil, err
	}

	runId, err := res.LastInsertId()

	if err != nil {
		log.Println(err)
		return nil, err
	}

	for _, outcome := range report.Outcomes {
		_, err := repo.DB.Exec(`
			INSERT INTO invest_orders SET
				run_id = ?,
				asset = ?,
				status = ?,
				reason = ?,
				external_id = ?,
				executed_quantity = ?,
				spent_amount = ?,
				received_amount = ?,
				attempted_amount = ?,
				attempted_quantity = ?`,
			runId,
			outcome.Asset,
			outcome.Status,
			outcome.Reason,
			outcome.OrderId,
			outcome.ExecutedQuantity,
			outcome.SpentAmount,
			outcome.ReceivedAmount,
			outcome.AttemptedAmount,
			outcome.AttemptedQuantity,
		)

		if err != nil {
			log.Println(err)
			return nil, err
		}
	}

	repo.saveLastReportCache(report)

	return &runId, nil
}

func (repo *ReportRepository) GetRunReports(limit int64) []model.RunReport {
	reports := make([]model.RunReport, 0)

	res, err := repo.DB.Query(`
		SELECT
			r.id as Id,
			r.uuid as Uuid,
			r.operation as Operation,
			r.created_at as CreatedAt
		FROM invest_runs r
		WHERE r.bot_id = ?
		ORDER BY r.id DESC
		LIMIT ?`,
		repo.CurrentBot.Id,
		limit,
	)

	if err != nil {
		log.Println(err)
		return reports
	}

	defer res.Close()

	runIds := make([]int64, 0)

	for res.Next() {
		var runId int64
		var report model.RunReport

		err := res.Scan(
			&runId,
			&report.RunUuid,
			&report.Operation,
			&report.CreatedAt,
		)

		if err != nil {
			log.Println(err)
			continue
		}

		report.Outcomes = make([]model.OrderOutcome, 0)
		reports = append(reports, report)
		runIds = append(runIds, runId)
	}

	for index, runId := range runIds {
		reports[index].Outcomes = repo.getOutcomes(runId)
	}

	return reports
}

func (repo *ReportRepository) GetLastReport() *model.RunReport {
	cached := repo.RDB.Get(*repo.Ctx, repo.getLastReportCacheKey()).Val()

	if len(cached) > 0 {
		var report model.RunReport
		err := json.Unmarshal([]byte(cached), &report)

		if err == nil {
			return &report
		}
	}

	reports := repo.GetRunReports(1)

	if len(reports) == 0 {
		return nil
	}

	repo.saveLastReportCache(reports[0])

	return &reports[0]
}

func (repo *ReportRepository) getOutcomes(runId int64) []model.OrderOutcome {
	outcomes := make([]model.OrderOutcome, 0)

	res, err := repo.DB.Query(`
		SELECT
			o.asset as Asset,
			o.status as Status,
			o.reason as Reason,
			o.external_id as ExternalId,
			o.executed_quantity as ExecutedQuantity,
			o.spent_amount as SpentAmount,
			o.received_amount as ReceivedAmount,
			o.attempted_amount as AttemptedAmount,
			o.attempted_quantity as AttemptedQuantity
		FROM invest_orders o
		WHERE o.run_id = ?
		ORDER BY o.id ASC`,
		runId,
	)

	if err != nil {
		log.Println(err)
		return outcomes
	}

	defer res.Close()

	for res.Next() {
		var outcome model.OrderOutcome

		err := res.Scan(
			&outcome.Asset,
			&outcome.Status,
			&outcome.Reason,
			&outcome.OrderId,
			&outcome.ExecutedQuantity,
			&outcome.SpentAmount,
			&outcome.ReceivedAmount,
			&outcome.AttemptedAmount,
			&outcome.AttemptedQuantity,
		)

		if err != nil {
			log.Println(err)
			continue
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (repo *ReportRepository) saveLastReportCache(report model.RunReport) {
	encoded, err := json.Marshal(report)

	if err == nil {
		repo.RDB.Set(*repo.Ctx, repo.getLastReportCacheKey(), string(encoded), time.Hour)
	}
}

func (repo *ReportRepository) getLastReportCacheKey() string {
	return fmt.Sprintf("last-run-report-bot-%d", repo.CurrentBot.Id)
}
