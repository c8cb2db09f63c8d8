package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"go.uber.org/zap"
)

type releaseStock func(ctx context.Context, bookID int64) error

// Consumer replays compensating stock releases that could not be delivered
// synchronously. A message stays unmarked until the release goes through.
type Consumer struct {
	releaseHandler releaseStock
	log            *zap.Logger
	ready          chan bool
}

func NewConsumer(release releaseStock, log *zap.Logger) *Consumer {
	return &Consumer{
		releaseHandler: release,
		log:            log.Named("consumer"),
		ready:          make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(consumer.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var msg model.StockReleaseMsg
			if err := json.Unmarshal(message.Value, &msg); err != nil {
				consumer.log.Error("unmarshal stock release", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.releaseHandler(context.Background(), msg.BookID); err != nil {
				consumer.log.Error("consumer.releaseHandler", zap.Int64("bookId", msg.BookID), zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
