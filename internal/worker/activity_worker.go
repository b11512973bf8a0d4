package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/model"
)

// ActivityStore is the slice of the activity repository the worker needs.
type ActivityStore interface {
	Create(activity *model.Activity) error
}

// ActivityWorker drains the post lifecycle queue and persists activity rows.
type ActivityWorker struct {
	conn      *amqp.Connection
	store     ActivityStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, store ActivityStore, queueName string) *ActivityWorker {
	return &ActivityWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(d)
			}
		}
	}()

	return nil
}

// handleDelivery acks a persisted activity. A payload that does not decode is
// poison and is dropped; a persist failure is requeued once so a transient
// storage blip gets a second chance before the delivery is dropped.
func (w *ActivityWorker) handleDelivery(d amqp.Delivery) {
	var activity model.Activity
	if err := json.Unmarshal(d.Body, &activity); err != nil {
		log.Printf("worker decode activity failed: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.store.Create(&activity); err != nil {
		log.Printf("worker persist activity failed: %v", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
