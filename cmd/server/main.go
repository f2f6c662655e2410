package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/controller"
	"github.com/api-sage/retail-bank-core/internal/adapter/http/middleware"
	"github.com/api-sage/retail-bank-core/internal/adapter/http/router"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/postgres"
	"github.com/api-sage/retail-bank-core/internal/config"
	"github.com/api-sage/retail-bank-core/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	clientRepo := postgres.NewClientRepository(db)
	tariffRepo := postgres.NewTariffRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactRepo := postgres.NewTransactRepository(db)
	creditRepo := postgres.NewCreditRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	notifier := services.NewNotifierService(cfg.CallbackTimeout)

	clientService := services.NewClientService(clientRepo)
	tariffService := services.NewTariffService(tariffRepo)
	accountService := services.NewAccountService(accountRepo, clientRepo, tariffRepo)
	transferService := services.NewTransferService(transactRepo, accountRepo)
	creditService := services.NewCreditService(creditRepo, accountRepo, clientRepo, tariffRepo, cfg.MaxActiveCredits)
	investmentService := services.NewInvestmentService(investmentRepo, accountRepo, clientRepo, tariffRepo)
	paymentService := services.NewPaymentService(paymentRepo, accountRepo, clientRepo, notifier)
	scheduler := services.NewSchedulerService(
		creditRepo,
		investmentRepo,
		paymentRepo,
		accountRepo,
		notifier,
		cfg.BankPayDeadline,
		cfg.CreditSweepEvery,
		cfg.InvestSweepEvery,
		cfg.PaymentSweepEvery,
	)

	bootstrap := services.NewBootstrapService(clientRepo, tariffRepo, accountRepo, cfg.BankPIN)
	if err := bootstrap.Run(ctx); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	mux := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		controller.NewClientController(clientService),
		controller.NewTariffController(tariffService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
		controller.NewCreditController(creditService),
		controller.NewInvestmentController(investmentService),
		controller.NewPaymentController(paymentService),
		controller.NewSweepController(scheduler),
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("http server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped: %v", err)
	}
	log.Println("server stopped")
}
