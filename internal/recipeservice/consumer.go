package recipeservice

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/recipehub/internal/common"
)

// ConsumeGenerated stores the audit records published by Generate until ctx is cancelled.
func (s *RecipeService) ConsumeGenerated(ctx context.Context, mc common.MessageConsumer) error {
	msgs, err := mc.Consume(common.RecipeGeneratedKey, common.RecipeExchange, common.RecipeGeneratedQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleGenerated(ctx, msg)

			case <-ctx.Done():
				s.logger.Info("stopping ConsumeGenerated due to context cancellation")
				return
			}
		}
	}()

	return nil
}

// handleGenerated acks a stored record. Malformed messages are dropped; a
// failed insert is requeued once.
func (s *RecipeService) handleGenerated(ctx context.Context, msg amqp.Delivery) {
	var r Record
	if err := json.Unmarshal(msg.Body, &r); err != nil {
		s.logger.Error("could not unmarshal generated recipe", slog.String("error", err.Error()))
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := s.m.insert(ctx, &r); err != nil {
		s.logger.Error("could not store generated recipe", slog.String("error", err.Error()), slog.String("event_id", r.EventID), slog.Bool("redelivered", msg.Redelivered))
		msg.Nack(false, !msg.Redelivered)
		return
	}

	msg.Ack(false)
}
