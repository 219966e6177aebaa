package producer_test

import (
	"context"
	"errors"
	"testing"

	"hrms-lite/internal/messaging/kafka"
	kafkaMock "hrms-lite/internal/messaging/kafka/mock"
	"hrms-lite/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := w.failFor[string(m.Key)]; ok {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	cfg := producer.WorkerConfig{BatchSize: 10, MaxRetries: 3}

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10, 3).Return([]kafka.OutboxEvent{
			{ID: "evt-1", RequestID: "REQ-1", AggregateID: "E1", AggregateType: "employee", EventType: "employee_created", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), cfg)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "E1", string(writer.written[0].Key))
		assert.Len(t, writer.written[0].Headers, 3)
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"E1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 10, 3).Return([]kafka.OutboxEvent{
			{ID: "evt-1", AggregateID: "E1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "evt-2", AggregateID: "E2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), cfg)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 10, 3).Return(nil, errors.New("db error"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), cfg)

		assert.Error(t, err)
	})

	t.Run("defaults apply to zero config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50, 10).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), producer.WorkerConfig{})

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}
