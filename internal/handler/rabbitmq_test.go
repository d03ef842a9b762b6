package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MichalMitros/catalog-feed-sync/internal/handler"
	"github.com/MichalMitros/catalog-feed-sync/internal/handler/mocks"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/models"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/rabbitmq"
	"github.com/go-faker/faker/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commandermocks "github.com/MichalMitros/catalog-feed-sync/pkg/v1/commander/mocks"
)

func TestUnitHandle(t *testing.T) {
	accountID := faker.UUIDHyphenated()

	tests := map[string]struct {
		message         string
		outcome         *models.Outcome
		wantErr         bool
		wantPermanent   bool
		wantInterrupted bool
	}{
		"success": {
			message: `{"accountId":"` + accountID + `"}`,
			outcome: &models.Outcome{AccountID: accountID, State: models.StateDone},
		},
		"failed with not retryable kind": {
			message: `{"accountId":"` + accountID + `"}`,
			outcome: &models.Outcome{
				AccountID: accountID,
				State:     models.StateFailed,
				Kind:      models.KindAuth,
			},
		},
		"failed with retryable kind": {
			message: `{"accountId":"` + accountID + `"}`,
			outcome: &models.Outcome{
				AccountID: accountID,
				State:     models.StateFailed,
				Kind:      models.KindFetch,
			},
			wantErr: true,
		},
		"interrupted by shutdown": {
			message: `{"accountId":"` + accountID + `"}`,
			outcome: &models.Outcome{
				AccountID: accountID,
				State:     models.StateFailed,
				Kind:      models.KindCanceled,
			},
			wantErr:         true,
			wantInterrupted: true,
		},
		"malformed message": {
			message:       `{"accountId":`,
			wantErr:       true,
			wantPermanent: true,
		},
		"missing account id": {
			message:       `{"shopUrl":"https://shop.test"}`,
			wantErr:       true,
			wantPermanent: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			syncer := mocks.NewSyncer(t)
			if tt.outcome != nil {
				syncer.On("SyncAccount", mock.Anything, accountID).Return(*tt.outcome)
			}

			handle := startHandler(t, syncer, nil)
			err := handle(context.TODO(), []byte(tt.message))

			if !tt.wantErr {
				require.NoError(t, err, "shouldn't return any error")
				return
			}

			require.Error(t, err, "should return error")
			assert.Equal(t, tt.wantPermanent, errorIsPermanent(err), "should mark permanent errors")
			assert.Equal(t, tt.wantInterrupted, errors.Is(err, rabbitmq.ErrInterrupted), "should mark interrupted handling")
		})
	}
}

func TestUnitHandleSendsOutcome(t *testing.T) {
	accountID := faker.UUIDHyphenated()
	outcome := models.Outcome{
		AccountID:      accountID,
		SupplierID:     faker.Word(),
		State:          models.StateDone,
		FetchedEntries: 3,
		StoredProducts: 2,
	}

	syncer := mocks.NewSyncer(t)
	syncer.On("SyncAccount", mock.Anything, accountID).Return(outcome)

	sender := commandermocks.NewSender(t)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg []byte) bool {
		var sent models.Outcome
		return json.Unmarshal(msg, &sent) == nil && assert.ObjectsAreEqual(outcome, sent)
	})).Return(assert.AnError)

	handle := startHandler(t, syncer, sender)
	err := handle(context.TODO(), []byte(`{"accountId":"`+accountID+`"}`))

	require.NoError(t, err, "failed outcome sending shouldn't fail handling")
}

func TestUnitStartConsumeError(t *testing.T) {
	consumer := mocks.NewConsumer(t)
	consumer.On("Consume", mock.Anything, "queue", mock.Anything).Return(nil, assert.AnError)

	logger := zerolog.Nop()
	h := handler.NewHandler(consumer, mocks.NewSyncer(t), nil, &logger)

	require.ErrorIs(t, h.Start(context.TODO(), "queue"), assert.AnError, "should return consuming error")
}

// startHandler starts handler with mocked consumer and returns handler function passed to consumer.
func startHandler(t *testing.T, syncer handler.Syncer, outcomes *commandermocks.Sender) rabbitmq.HandlerFunc {
	t.Helper()

	var handle rabbitmq.HandlerFunc
	errs := make(chan error)
	t.Cleanup(func() { close(errs) })

	consumer := mocks.NewConsumer(t)
	consumer.On("Consume", mock.Anything, "queue", mock.Anything).
		Run(func(args mock.Arguments) {
			handle = args.Get(2).(rabbitmq.HandlerFunc)
		}).
		Return((<-chan error)(errs), nil)

	logger := zerolog.Nop()
	var h *handler.RMQHandler
	if outcomes != nil {
		h = handler.NewHandler(consumer, syncer, outcomes, &logger)
	} else {
		h = handler.NewHandler(consumer, syncer, nil, &logger)
	}
	require.NoError(t, h.Start(context.TODO(), "queue"))
	require.NotNil(t, handle, "should pass handler to consumer")

	return handle
}

func errorIsPermanent(err error) bool {
	return errors.Is(err, rabbitmq.ErrPermanent)
}
