package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain/history"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

var _ history.Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher writes one message per recorded batch, keyed by owner so an owner's entries stay ordered
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(c ctx.Ctx, e *history.Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "entryId": e.Id}).Error("json.Marshal failed")
		return err
	}
	msg := kafka.Message{
		Key:   []byte(e.Owner.ToLowerStr()),
		Value: val,
		Time:  e.Timestamp,
	}
	if err := p.writer.WriteMessages(c, msg); err != nil {
		c.WithFields(log.Fields{"err": err, "entryId": e.Id}).Error("writer.WriteMessages failed")
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
