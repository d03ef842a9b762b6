package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-feed-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name Consumer --filename consumer.go

// Syncer synchronizes products of catalog accounts.
type Syncer interface {
	SyncAccount(ctx context.Context, accountID string) models.Outcome
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq      Consumer
	syncer   Syncer
	outcomes commander.Sender
	logger   *zerolog.Logger
}

// NewHandler returns new RMQHandler.
// Outcomes of synchronizations are sent with outcomes sender if it's not nil.
func NewHandler(rmq Consumer, syncer Syncer, outcomes commander.Sender, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:      rmq,
		syncer:   syncer,
		outcomes: outcomes,
		logger:   logger,
	}
}

// Start starts consuming and handling sync commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func (h *RMQHandler) handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("accountId", cmd.AccountID).
		Msg("synchronization requested")

	outcome := h.syncer.SyncAccount(ctx, cmd.AccountID)

	if h.outcomes != nil {
		if err := h.sendOutcome(ctx, &outcome); err != nil {
			h.logger.Error().
				Err(err).
				Str("accountId", cmd.AccountID).
				Msg("can't send synchronization outcome")
		}
	}

	if outcome.Kind == models.KindCanceled {
		return fmt.Errorf("%w: synchronization of account %s: %s", rabbitmq.ErrInterrupted, outcome.AccountID, outcome.Error)
	}

	if outcome.Retryable() {
		return fmt.Errorf("synchronization of account %s failed: %s", outcome.AccountID, outcome.Error)
	}

	return nil
}

func (h *RMQHandler) sendOutcome(ctx context.Context, outcome *models.Outcome) error {
	msg, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("can't marshal outcome: %w", err)
	}

	return h.outcomes.Send(ctx, msg)
}

func decodeMessage(msg []byte) (*commander.SyncCommand, error) {
	var cmd commander.SyncCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return nil, fmt.Errorf("%w: can't decode sync command: %w", rabbitmq.ErrPermanent, err)
	}

	if cmd.AccountID == "" {
		return nil, fmt.Errorf("%w: sync command without account id", rabbitmq.ErrPermanent)
	}

	return &cmd, nil
}
