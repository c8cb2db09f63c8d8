package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biblioteca/loan-service/loan/config"
	"github.com/biblioteca/loan-service/loan/internal/client/book"
	"github.com/biblioteca/loan-service/loan/internal/client/user"
	"github.com/biblioteca/loan-service/loan/internal/handler"
	"github.com/biblioteca/loan-service/loan/internal/repository"
	"github.com/biblioteca/loan-service/loan/internal/server"
	"github.com/biblioteca/loan-service/loan/internal/service"
	"github.com/biblioteca/loan-service/loan/migrations"
	"github.com/biblioteca/loan-service/pkg/kafka"
	"github.com/biblioteca/loan-service/pkg/logger"
	"github.com/biblioteca/loan-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "loan")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo loans %v", err)
	}

	bookClient := book.NewClient(log, cfg.BooksHTTPServer)
	userClient := user.NewClient(log, cfg.UsersHTTPServer)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer %v", err)
	}
	svc := service.NewService(repo, userClient, bookClient, service.NewEnqueuer(producer), log)
	h := handler.New(svc, log)

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StockConsumerGroup)
	if err != nil {
		return fmt.Errorf("kafka consumer %v", err)
	}
	consumeCtx, cancelConsume := context.WithCancel(context.Background())
	go kafka.Consume(consumeCtx, consumer, handler.NewConsumer(bookClient.IncreaseStock, log), kafka.StockTopic, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	cancelConsume()
	if err := consumer.Close(); err != nil {
		log.Error("consumer.Close", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
