package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/recipehub/internal/common"
	"golang.org/x/exp/rand"
)

const (
	welcomeTemplate   = "welcome_email.html"
	defaultMaxRetries = 5
	defaultBaseDelay  = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, cfg MailConfig, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(cfg, NewTemplate()),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
}

// SendWelcomeEmail consumes user.registered events and mails each new user until Close is called.
func (s *MailService) SendWelcomeEmail() {
	msgs, err := s.mb.Consume(common.UserRegisteredKey, common.UserExchange, common.UserRegisteredQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.welcome(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) welcome(msg amqp.Delivery) {
	var data struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	err := json.Unmarshal(msg.Body, &data)
	if err != nil || strings.TrimSpace(data.Email) == "" {
		s.logger.Error("could not unmarshal message", slog.String("body", string(msg.Body)))
		msg.Nack(false, false)
		return
	}

	// exponential backoff with full jitter
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err = s.m.send(data.Email, welcomeData{Name: data.Name}, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", data.Email))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", data.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			msg.Nack(false, true)
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", data.Email), slog.String("error", err.Error()))
	msg.Ack(false)
}

// Close stops consuming and waits for the in-flight message.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
