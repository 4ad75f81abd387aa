package mailworker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"filetag-api/config"
	"filetag-api/internal/application/ports"
	"filetag-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

const (
	subjectUploadCompleted = "Files have been uploaded"
	subjectSignInCode      = "Your confirmation code"
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	mailer     ports.Mailer
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

// New builds a disconnected consumer; Connect dials its own
// connection so deliveries never share a socket with the publisher.
func New(cfg config.MQ, logger *zap.Logger, mailer ports.Mailer) *Consumer {
	return &Consumer{
		cfg:    cfg,
		log:    logger,
		mailer: mailer,
	}
}

var err error

func (c *Consumer) Connect(dsn string) error {
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return err
}

func (c *Consumer) Init() error {
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range []string{
		mq.KindUploadCompleted,
		mq.KindSignInCode,
	} {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var cerr error
	c.chDelivery, cerr = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if cerr != nil {
		return fmt.Errorf("consume: %w", cerr)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-c.chDelivery:
			// we can also use "fan-out" chan here with "worker-pool"
			// in case of heavy logic processing of messages
			if err = c.delivery(ctx, msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	// we are having simple delivery but in prod
	// we should implement also ack/nack procedures

	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("event decode: %w", err)
	}

	var subject, html string
	switch msg.RoutingKey {
	case mq.KindUploadCompleted:
		subject = subjectUploadCompleted
		h, rerr := renderUploadCompleted(e)
		if rerr != nil {
			return rerr
		}
		html = h
	case mq.KindSignInCode:
		subject = subjectSignInCode
		h, rerr := renderSignInCode(e)
		if rerr != nil {
			return rerr
		}
		html = h
	default:
		c.log.Warn("unknown routing key", zap.String("routing_key", msg.RoutingKey))
		return nil
	}

	return c.mailer.Send(ctx, e.Email, subject, html)
}
