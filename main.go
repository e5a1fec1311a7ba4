package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gastobot/internal/budget"
	"gastobot/internal/config"
	"gastobot/internal/consumer"
	"gastobot/internal/producer"
	"gastobot/internal/repository"
	"gastobot/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using process environment")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("couldn't parse config: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, cfg.PostgresEndpoint)
	if err != nil {
		logrus.Fatalf("couldn't connect to postgres: %v", err)
	}
	defer pool.Close()

	if err = repository.RunMigrations(cfg.PostgresEndpoint); err != nil {
		logrus.Fatalf("couldn't run migrations: %v", err)
	}

	catalog, err := budget.Load(cfg.BudgetConfigPath)
	if err != nil {
		logrus.Fatalf("couldn't load budget catalog: %v", err)
	}
	logrus.Infof("budget catalog loaded with %d categories", catalog.Len())

	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		logrus.Fatal(err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	updatesChan := bot.GetUpdatesChan(u)

	var publisher service.EventPublisher
	if cfg.AMQP.URL != "" {
		amqpProducer, amqpErr := producer.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if amqpErr != nil {
			logrus.Fatalf("couldn't connect to AMQP: %v", amqpErr)
		}
		defer func() {
			if closeErr := amqpProducer.Close(); closeErr != nil {
				logrus.Errorf("couldn't close AMQP producer: %v", closeErr)
			}
		}()
		publisher = amqpProducer
	}

	ledger := repository.NewPostgres(pool)
	recorder := service.NewRecorder(ledger, catalog, publisher)
	reporter := service.NewReporter(ledger, catalog)

	tgBot := consumer.NewBot(bot, updatesChan, validator.New(), recorder, reporter)
	go tgBot.Consume(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	cancel()
	<-time.After(2 * time.Second)
}
