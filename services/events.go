package services

import (
	"context"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/model"
)

// EventService publishes reservation lifecycle events to Kafka so
// downstream consumers (billing, fleet ops) can react without polling
// the database. Without configured brokers the service is a no-op.
type EventService struct {
	appContext.DefaultService

	writer *kafka.Writer
	topic  string
}

const EVENT_SVC = "event_svc"

type reservationEvent struct {
	Type        string    `json:"type"`
	Reservation string    `json:"reservation_id"`
	CarID       string    `json:"car_id"`
	Status      string    `json:"status"`
	PickupDate  string    `json:"pickup_date"`
	DropoffDate string    `json:"dropoff_date"`
	EmittedAt   time.Time `json:"emitted_at"`
}

func (svc EventService) Id() string {
	return EVENT_SVC
}

func (svc *EventService) Configure(ctx *appContext.Context) error {
	svc.topic = os.Getenv("KAFKA_RESERVATION_TOPIC")
	if svc.topic == "" {
		svc.topic = "reservation-events"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *EventService) Start() error {
	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	if len(brokers) == 0 || brokers[0] == "" {
		log.Info("KAFKA_BROKERS not set, reservation events disabled")
		return nil
	}

	svc.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        svc.topic,
		Balancer:     &kafka.Hash{}, // key by reservation ID for ordering
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Warnf),
	}
	return nil
}

func (svc *EventService) Shutdown() {
	if svc.writer != nil {
		if err := svc.writer.Close(); err != nil {
			log.WithError(err).Warn("Failed to close kafka writer")
		}
	}
}

// PublishReservationEvent emits one lifecycle event keyed by
// reservation ID.
func (svc *EventService) PublishReservationEvent(ctx context.Context, eventType string, res *model.Reservation) error {
	if svc.writer == nil {
		return nil
	}

	payload, err := sonic.Marshal(reservationEvent{
		Type:        eventType,
		Reservation: res.ID,
		CarID:       res.CarID,
		Status:      res.Status,
		PickupDate:  res.PickupDate.Format("2006-01-02"),
		DropoffDate: res.DropoffDate.Format("2006-01-02"),
		EmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return svc.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(res.ID),
		Value: payload,
	})
}
