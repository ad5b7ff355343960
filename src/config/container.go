package config

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-invest-bot/src/cli"
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/controller"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service"
	"gitlab.com/open-soft/go-invest-bot/src/service/exchange"
	"gitlab.com/open-soft/go-invest-bot/src/service/strategy"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
	"gitlab.com/open-soft/go-invest-bot/src/validator"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

type BotProviderInterface interface {
	GetCurrentBot() *model.Bot
	Create(bot model.Bot) error
}

// ResolveCurrentBot loads the bot identity row, creating it on the very
// first start. The created row is re-read so the caller always gets the
// database-assigned id.
func ResolveCurrentBot(botRepository BotProviderInterface, botUuid string) *model.Bot {
	currentBot := botRepository.GetCurrentBot()

	if currentBot != nil {
		return currentBot
	}

	err := botRepository.Create(model.Bot{BotUuid: botUuid})
	if err != nil {
		panic(err)
	}

	currentBot = botRepository.GetCurrentBot()
	if currentBot == nil {
		panic(fmt.Sprintf("Can't initialize bot: %s", botUuid))
	}

	return currentBot
}

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))

	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(64)
	db.SetMaxOpenConns(64)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	binance := client.Binance{
		ApiKey:       os.Getenv("BINANCE_API_KEY"),
		ApiSecret:    os.Getenv("BINANCE_API_SECRET"),
		Channel:      make(chan []byte),
		SocketWriter: make(chan []byte),
		WaitMode:     false,
		Connected:    false,
		Lock:         &sync.Mutex{},
	}

	botRepository := repository.BotRepository{
		DB:  db,
		RDB: rdb,
		Ctx: &ctx,
	}

	currentBot := ResolveCurrentBot(&botRepository, os.Getenv("BOT_UUID"))

	log.Printf("Bot [%s] is initialized successfully", currentBot.BotUuid)

	formatter := utils.Formatter{}
	timeHelper := utils.TimeHelper{}
	httpClient := client.HttpClient{}

	filterService := exchange.SymbolFilterService{
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
		Binance:    &binance,
		Cache:      make(map[string]model.SymbolFilters),
	}

	balanceService := exchange.BalanceService{
		RDB:           rdb,
		Ctx:           &ctx,
		CurrentBot:    currentBot,
		Binance:       &binance,
		PriceAPI:      &binance,
		FilterService: &filterService,
	}

	orderValidator := validator.OrderValidator{
		Binance:   &binance,
		Formatter: &formatter,
	}

	allocationEngine := strategy.AllocationEngine{
		Formatter: &formatter,
	}

	callbackManager := service.CallbackManager{
		CallbackHost: os.Getenv("CALLBACK_DSN"),
		HttpClient:   &httpClient,
	}

	reportRepository := repository.ReportRepository{
		DB:         db,
		RDB:        rdb,
		Ctx:        &ctx,
		CurrentBot: currentBot,
	}

	orderExecutor := exchange.OrderExecutor{
		CurrentBot:       currentBot,
		Binance:          &binance,
		BalanceService:   &balanceService,
		FilterService:    &filterService,
		OrderValidator:   &orderValidator,
		ReportRepository: &reportRepository,
		CallbackManager:  &callbackManager,
		TimeService:      &timeHelper,
	}

	reportController := controller.ReportController{
		CurrentBot:       currentBot,
		ReportRepository: &reportRepository,
		AllocationEngine: &allocationEngine,
	}

	app := cli.App{
		Prompt:           &cli.Prompt{Reader: bufio.NewReader(os.Stdin)},
		AllocationEngine: &allocationEngine,
		OrderExecutor:    &orderExecutor,
		BalanceService:   &balanceService,
	}

	return Container{
		Db:               db,
		CurrentBot:       currentBot,
		Binance:          &binance,
		BalanceService:   &balanceService,
		OrderExecutor:    &orderExecutor,
		AllocationEngine: &allocationEngine,
		ReportRepository: &reportRepository,
		ReportController: &reportController,
		App:              &app,
	}
}

type Container struct {
	Db               *sql.DB
	CurrentBot       *model.Bot
	Binance          *client.Binance
	BalanceService   *exchange.BalanceService
	OrderExecutor    *exchange.OrderExecutor
	AllocationEngine *strategy.AllocationEngine
	ReportRepository *repository.ReportRepository
	ReportController *controller.ReportController
	App              *cli.App
}

func (c *Container) StartHttpServer() {
	http.HandleFunc("/report/list", c.ReportController.GetReportListAction)
	http.HandleFunc("/report/last", c.ReportController.GetLastReportAction)
	http.HandleFunc("/allocation/preview", c.ReportController.PostAllocationPreviewAction)

	listen := os.Getenv("HTTP_LISTEN")
	if len(listen) == 0 {
		listen = ":8080"
	}

	go func() {
		err := http.ListenAndServe(listen, nil)
		if err != nil {
			log.Println(err)
		}
	}()
}
