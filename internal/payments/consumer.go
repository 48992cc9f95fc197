package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/cookledger/internal/config"
	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=consumer.go -destination=consumer_mock.go -package=payments

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var processingEvents sync.Map

// Event is a payment-succeeded notification from the payment provider; one
// event credits one cook's ledger exactly once, keyed by Reference.
type Event struct {
	OwnerID     int             `json:"owner_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Reference   string          `json:"reference"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at,omitempty"`
}

type LedgerService interface {
	ApplyTransaction(ctx context.Context, ownerID int, req ledgerservice.ApplyRequest) (*domain.Transaction, decimal.Decimal, error)
}

type ReaderI interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Service struct {
	reader        ReaderI
	ledgerService LedgerService
	workerPool    WorkerPoolI
}

func NewReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers(),
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
	})
}

func New(reader ReaderI, ledgerService LedgerService) *Service {
	return &Service{
		reader:        reader,
		ledgerService: ledgerService,
		workerPool:    NewWorkerPool(10),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payment consumer started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	defer func() {
		// drain queued credits first, tasks commit through the reader
		s.workerPool.Close()
		if err := s.reader.Close(); err != nil {
			zap.L().Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				zap.L().Info("Context canceled, stopping payment consumer")
				return
			}
			zap.L().Error("failed to fetch payment event", zap.Error(err))
			continue
		}
		s.processMessage(ctx, msg)
	}
}

func (s *Service) processMessage(ctx context.Context, msg kafka.Message) {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		zap.L().Error("failed to parse payment event, skipping", zap.Error(err))
		s.commit(ctx, msg)
		return
	}

	if _, loaded := processingEvents.LoadOrStore(event.Reference, struct{}{}); loaded {
		return
	}

	err := s.workerPool.AddTask(ctx, func() error {
		defer processingEvents.Delete(event.Reference)
		if err := s.handleEvent(ctx, event); err != nil {
			return err
		}
		s.commit(ctx, msg)
		return nil
	})
	if err != nil {
		processingEvents.Delete(event.Reference)
		zap.L().Error("failed to enqueue payment event", zap.Error(err))
	}
}

func (s *Service) handleEvent(ctx context.Context, event Event) error {
	description := event.Description
	if description == "" {
		description = "payment for " + event.Reference
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, _, err = s.ledgerService.ApplyTransaction(ctx, event.OwnerID, ledgerservice.ApplyRequest{
			Kind:        domain.TransactionKindCredit,
			GrossAmount: event.TotalAmount,
			Description: description,
			Reference:   event.Reference,
		})
		switch {
		case err == nil:
			zap.L().Info("payment credited",
				zap.Int("ownerID", event.OwnerID),
				zap.String("reference", event.Reference),
			)
			return nil
		case errors.Is(err, ledgerservice.ErrDuplicateReference):
			zap.L().Info("payment event replayed, already credited", zap.String("reference", event.Reference))
			return nil
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			zap.L().Warn("payment event with invalid amount, dropping", zap.String("reference", event.Reference))
			return nil
		default:
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
			}
		}
	}
	return fmt.Errorf("failed to credit payment %s after %d retries: %w", event.Reference, maxRetries, err)
}

func (s *Service) commit(ctx context.Context, msg kafka.Message) {
	if err := s.reader.CommitMessages(ctx, msg); err != nil {
		zap.L().Error("failed to commit payment event", zap.Error(err))
	}
}
