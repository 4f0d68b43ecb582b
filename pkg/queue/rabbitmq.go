package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"caption-studio-server/config"
	"caption-studio-server/pkg/logger"
)

// Queue names
const (
	QueueOverlayExport = "overlay_export"
	QueueExportStatus  = "export_status"
)

// Task type constants
const (
	TaskTypeOverlayExport = "overlay_export"
	TaskTypeExportStatus  = "export_status"
)

type RabbitMQClient struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queues     map[string]amqp.Queue
}

type Task struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Priority  int                    `json:"priority"`
	Retry     int                    `json:"retry"`
	MaxRetry  int                    `json:"max_retry"`
	CreatedAt time.Time              `json:"created_at"`
}

type TaskHandler func(task *Task) error

// Publisher is the publishing side of the queue.
type Publisher interface {
	PublishTask(queueName string, task *Task) error
}

var Queue *RabbitMQClient

func InitRabbitMQ(cfg *config.Config) error {
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	Queue = &RabbitMQClient{
		connection: conn,
		channel:    ch,
		queues:     make(map[string]amqp.Queue),
	}

	if err := Queue.declareQueues(); err != nil {
		return fmt.Errorf("failed to declare queues: %w", err)
	}

	logger.Info("RabbitMQ connected successfully")
	return nil
}

func (r *RabbitMQClient) declareQueues() error {
	// Declare dead letter exchange first so the queues can reference it
	err := r.channel.ExchangeDeclare(
		"dlx",
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}

	for _, name := range []string{QueueOverlayExport, QueueExportStatus} {
		queue, err := r.channel.QueueDeclare(
			name,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			amqp.Table{
				"x-message-ttl":             int32(30 * 60 * 1000), // 30 minutes
				"x-dead-letter-exchange":    "dlx",
				"x-dead-letter-routing-key": "dlx." + name,
				"x-max-priority":            int32(10),
			},
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}

		r.queues[name] = queue
	}

	return nil
}

func (r *RabbitMQClient) PublishTask(queueName string, task *Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = r.channel.Publish(
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     clampPriority(task.Priority),
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish task to queue %s: %w", queueName, err)
	}

	logger.Infof("Task published to queue %s: %s", queueName, task.ID)
	return nil
}

func (r *RabbitMQClient) ConsumeTask(queueName string, handler TaskHandler, concurrency int) error {
	err := r.channel.Qos(
		concurrency, // prefetch count
		0,           // prefetch size
		false,       // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := r.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for i := 0; i < concurrency; i++ {
		go r.worker(msgs, handler, queueName)
	}

	logger.Infof("Started %d workers for queue %s", concurrency, queueName)
	return nil
}

func (r *RabbitMQClient) worker(msgs <-chan amqp.Delivery, handler TaskHandler, queueName string) {
	for msg := range msgs {
		var task Task
		if err := json.Unmarshal(msg.Body, &task); err != nil {
			logger.Errorf("Failed to unmarshal task from queue %s: %v", queueName, err)
			msg.Nack(false, false) // Dead letter
			continue
		}

		if err := handler(&task); err != nil {
			logger.Errorf("Task %s failed: %v", task.ID, err)

			if task.Retry < task.MaxRetry {
				task.Retry++
				if retryErr := r.PublishTask(queueName, &task); retryErr != nil {
					logger.Errorf("Failed to retry task %s: %v", task.ID, retryErr)
				} else {
					logger.Infof("Task %s queued for retry (%d/%d)", task.ID, task.Retry, task.MaxRetry)
				}
			}

			msg.Nack(false, false) // Dead letter after max retries
			continue
		}

		logger.Debugf("Task %s from queue %s handled", task.ID, queueName)
		msg.Ack(false)
	}
}

func (r *RabbitMQClient) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.connection != nil {
		return r.connection.Close()
	}
	return nil
}

// NewTask builds a task whose payload is the JSON object form of payload.
func NewTask(taskType string, payload interface{}, priority int) (*Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}

	return &Task{
		ID:        "task_" + uuid.NewString(),
		Type:      taskType,
		Payload:   m,
		Priority:  priority,
		MaxRetry:  3,
		CreatedAt: time.Now(),
	}, nil
}

// DecodePayload converts a task payload into a typed struct.
func DecodePayload(task *Task, dest interface{}) error {
	raw, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload of task %s: %w", task.ID, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid payload in task %s: %w", task.ID, err)
	}
	return nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > 10 {
		return 10
	}
	return uint8(p)
}
