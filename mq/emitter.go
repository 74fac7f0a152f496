package mq

import (
	"context"
	"encoding/json"

	"hostelhub/logging"
	"hostelhub/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// BookingChannel is the pub/sub channel booking events are published on.
const BookingChannel = "booking-events"

// Event is the wire envelope of a published event.
type Event struct {
	Name string `json:"event"`
	models.Index
}

type Emitter interface {
	Emit(ctx context.Context, eventName string, content models.Index)
}

// LogEmitter only logs events. It is the emitter used when no broker is configured.
type LogEmitter struct {
	log *logrus.Entry
}

func NewLogEmitter(logger logrus.FieldLogger) *LogEmitter {
	return &LogEmitter{log: logging.Component(logger, "mq")}
}

func (e *LogEmitter) Emit(_ context.Context, eventName string, content models.Index) {
	e.log.WithFields(logrus.Fields{
		"event":  eventName,
		"entity": content.EntityType,
		"id":     content.EntityId,
	}).Debug("event notified")
}

// RedisEmitter publishes events on a Redis channel.
type RedisEmitter struct {
	conn    *redis.Client
	channel string
	log     *logrus.Entry
}

func NewRedisEmitter(conn *redis.Client, channel string, logger logrus.FieldLogger) *RedisEmitter {
	return &RedisEmitter{conn: conn, channel: channel, log: logging.Component(logger, "mq")}
}

// Emit never fails the caller; publish errors are logged.
func (e *RedisEmitter) Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(Event{Name: eventName, Index: content})
	if err != nil {
		e.log.WithError(err).Error("failed to marshal event content")
		return
	}

	if err := e.conn.Publish(ctx, e.channel, data).Err(); err != nil {
		e.log.WithError(err).WithField("channel", e.channel).Error("failed to publish event")
		return
	}
	e.log.WithFields(logrus.Fields{"event": eventName, "channel": e.channel}).Debug("event published")
}

// StartWorker subscribes to channel and hands each decoded event to handle
// until ctx is cancelled.
func StartWorker(ctx context.Context, conn *redis.Client, channel string, logger logrus.FieldLogger, handle func(Event)) {
	log := logging.Component(logger, "mq-worker")
	sub := conn.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.WithField("channel", channel).Info("listening for events")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			ev, err := Decode([]byte(msg.Payload))
			if err != nil {
				log.WithError(err).Warn("failed to parse event")
				continue
			}
			handle(ev)
		}
	}
}

func Decode(payload []byte) (Event, error) {
	var ev Event
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
