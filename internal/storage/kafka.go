package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"hungryhub/internal/domain"
)

type KafkaOrderPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaOrderPublisher(writer *kafka.Writer) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{Writer: writer}
}

func (p *KafkaOrderPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: payload,
	})
}
