// Package queue publishes and consumes asynchronous parse jobs over
// RabbitMQ. Uploads enqueue a job; the worker process consumes it.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// ParseQueue is the queue name for resume parse jobs.
const ParseQueue = "resume_parse_jobs"

// ParseJob asks the worker to extract and parse one uploaded resume.
type ParseJob struct {
	ResumeID   uuid.UUID `json:"resume_id"`
	UserID     uuid.UUID `json:"user_id"`
	StorageKey string    `json:"storage_key"`
	MimeType   string    `json:"mime_type"`
}

// Queue wraps an AMQP connection for parse-job publish/consume.
type Queue struct {
	conn *amqp.Connection
}

// Connect dials the broker and declares the parse queue.
func Connect(amqpURL string) (*Queue, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(ParseQueue, true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Queue{conn: conn}, nil
}

// Close closes the broker connection.
func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// PublishParseJob enqueues a parse job for the worker.
func (q *Queue) PublishParseJob(job ParseJob) error {
	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal parse job: %w", err)
	}

	err = ch.Publish("", ParseQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish parse job: %w", err)
	}
	return nil
}

// ConsumeParseJobs delivers parse jobs to the handler. A handler error
// requeues the job once; redelivered failures are dropped to avoid a
// poison-message loop.
func (q *Queue) ConsumeParseJobs(handler func(ParseJob) error) error {
	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := ch.Consume(ParseQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	for d := range deliveries {
		var job ParseJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			_ = d.Nack(false, false)
			continue
		}

		if err := handler(job); err != nil {
			_ = d.Nack(false, !d.Redelivered)
			continue
		}
		_ = d.Ack(false)
	}
	return nil
}
