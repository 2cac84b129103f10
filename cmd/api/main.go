package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loanledger/internal/adapter/http"
	mw "loanledger/internal/adapter/middleware"
	"loanledger/internal/adapter/repository/mysql"
	"loanledger/internal/config"
	agreementDomain "loanledger/internal/domain/agreement"
	appDomain "loanledger/internal/domain/application"
	contractDomain "loanledger/internal/domain/contract"
	judgmentDomain "loanledger/internal/domain/judgment"
	ledgerDomain "loanledger/internal/domain/ledger"
	"loanledger/internal/infrastructure/cache"
	"loanledger/internal/infrastructure/db"
	agreementuc "loanledger/internal/usecase/agreement"
	appuc "loanledger/internal/usecase/application"
	contractuc "loanledger/internal/usecase/contract"
	judgmentuc "loanledger/internal/usecase/judgment"
	ledgeruc "loanledger/internal/usecase/ledger"
	"loanledger/pkg/id"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&appDomain.Application{},
		&judgmentDomain.Judgment{},
		&contractDomain.Contract{},
		&ledgerDomain.Balance{},
		&ledgerDomain.Entry{},
		&ledgerDomain.Repayment{},
		&agreementDomain.Terms{},
		&agreementDomain.Acceptance{},
	); err != nil {
		log.Fatal(err)
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	// repositories + unit of work
	apps := mysql.NewApplicationRepository(gdb)
	judgments := mysql.NewJudgmentRepository(gdb)
	contracts := mysql.NewContractRepository(gdb)
	balances := mysql.NewBalanceRepository(gdb)
	terms := mysql.NewTermsRepository(gdb)
	acceptances := mysql.NewAcceptanceRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	appUC := appuc.NewUsecase(apps, uow)
	judgmentUC := judgmentuc.NewUsecase(judgments, uow)
	contractUC := contractuc.NewUsecase(contracts, uow)
	ledgerUC := ledgeruc.NewUsecase(apps, balances, uow)
	agreementUC := agreementuc.NewUsecase(terms, acceptances, uow)

	// handlers
	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC, judgmentUC)
	contractH := httpadp.NewContractHandler(contractUC)
	ledgerH := httpadp.NewLedgerHandler(ledgerUC)
	agreementH := httpadp.NewAgreementHandler(agreementUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}),
		middleware.Logger(),
		middleware.Recover(),
	)

	e.GET("/health", h.Health)

	e.POST("/applications", appH.CreateApplication)
	e.GET("/applications/:application_id", appH.GetApplication)
	e.POST("/applications/:application_id/judgments", appH.CreateJudgment)
	e.GET("/applications/:application_id/judgments", appH.GetJudgment)
	e.POST("/applications/:application_id/contract", contractH.ContractApplication)
	e.POST("/applications/:application_id/contracts", contractH.CreateContract)
	e.GET("/contracts/:contract_id", contractH.GetContract)
	e.PATCH("/contracts/:contract_id/status", contractH.UpdateContractStatus)

	// balance-affecting routes: double submission here moves money, so they
	// never run without the redis idempotency guard
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}
	ledgerGroup := e.Group("", mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	ledgerGroup.POST("/applications/:application_id/entries", ledgerH.CreateEntry)
	ledgerGroup.POST("/applications/:application_id/repayments", ledgerH.CreateRepayment)
	ledgerGroup.POST("/applications/:application_id/balance", ledgerH.CreateBalance)
	ledgerGroup.PUT("/applications/:application_id/balance", ledgerH.UpdateBalance)
	ledgerGroup.DELETE("/applications/:application_id/balance", ledgerH.DeleteBalance)

	e.GET("/applications/:application_id/balance", ledgerH.GetBalance)
	e.GET("/applications/:application_id/statement", ledgerH.GetStatement)

	e.POST("/terms", agreementH.CreateTerms)
	e.GET("/terms", agreementH.ListTerms)
	e.PUT("/users/:user_id/agreements", agreementH.RecordAgreement)
	e.GET("/users/:user_id/agreements", agreementH.ListAgreements)
	e.GET("/users/:user_id/agreements/check", agreementH.CheckRequiredAgreements)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
