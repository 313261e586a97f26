package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cafekiosk/kiosk/internal/config"
	"github.com/cafekiosk/kiosk/internal/log"
	"github.com/cafekiosk/kiosk/internal/repository"
	"github.com/cafekiosk/kiosk/internal/service"
	"github.com/cafekiosk/kiosk/internal/storage/db"
	"github.com/cafekiosk/kiosk/internal/storage/mail"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running stats application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	dateFlag := flag.String("date", "", "order date to aggregate, YYYY-MM-DD (default: today, UTC)")
	toFlag := flag.String("to", "", "recipient email address (required)")
	flag.Parse()

	if *toFlag == "" {
		return fmt.Errorf("-to is required")
	}

	orderDate := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			return fmt.Errorf("error parsing -date %q: %w", *dateFlag, err)
		}
		orderDate = parsed
	}

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Mail     config.Mail
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	mailClient, err := mail.NewSMTPClient(cfg.Mail)
	if err != nil {
		return fmt.Errorf("error creating smtp client: %w", err)
	}

	orderRepository := repository.NewOrderRepository(dbClient)
	mailHistoryRepository := repository.NewMailSendHistoryRepository(dbClient)

	mailService := service.NewMailService(mailClient, mailHistoryRepository)
	statisticsService := service.NewOrderStatisticsService(cfg.Mail.From, orderRepository, mailService)

	logger.InfoContext(ctx, "sending order statistics mail")

	if err := statisticsService.SendOrderStatisticsMail(ctx, orderDate, *toFlag); err != nil {
		return fmt.Errorf("error sending order statistics mail: %w", err)
	}

	logger.InfoContext(ctx, "order statistics mail sent")

	return nil
}
