package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/ReDe-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// channel часть amqp.Channel, которую использует publisher
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// dialTimeout ограничивает подключение к брокеру вместе с AMQP handshake
const dialTimeout = 3 * time.Second

// dialer открывает соединение и канал с объявленным exchange
type dialer func(ctx context.Context) (*amqp.Connection, channel, error)

// Publisher публикует события бронирований в topic exchange RabbitMQ
// Routing key совпадает с типом события (reservation.created и т.д.)
type Publisher struct {
	exchange string
	dial     dialer
	log      Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	closed bool

	// redial закрывается, когда фоновое переподключение завершено
	redial    chan struct{}
	redialErr error
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	p := &Publisher{
		exchange: exchange,
		log:      log,
	}
	p.dial = func(ctx context.Context) (*amqp.Connection, channel, error) {
		return dialExchange(ctx, url, exchange)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, ch, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}
	p.conn, p.ch = conn, ch

	log.Info("Events publisher connected, exchange=%s", exchange)
	return p, nil
}

func dialExchange(ctx context.Context, url, exchange string) (*amqp.Connection, channel, error) {
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return nil, nil, fmt.Errorf("%w: dial: %v", ErrConnect, context.DeadlineExceeded)
	}

	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return conn, ch, nil
}

// Publish отправляет событие
// При закрытом канале запускается переподключение; Publish ждет его не дольше ctx
func (p *Publisher) Publish(ctx context.Context, event domain.ReservationEvent) error {
	body, err := json.Marshal(FromDomainEvent(event))
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("%w: %s id=%d: %v", ErrPublish, event.Type, event.ReservationID, err)
	}

	p.log.Info("Events publisher: published %s for reservation id=%d", event.Type, event.ReservationID)
	return nil
}

// channel возвращает открытый канал
// Мьютекс не удерживается во время подключения, все ожидающие делят одну попытку
func (p *Publisher) channel(ctx context.Context) (channel, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	}
	if p.redial == nil {
		p.log.Warn("Events publisher: channel closed, reconnecting")
		p.redial = make(chan struct{})
		go p.reconnect(p.redial)
	}
	done := p.redial
	p.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: reconnect in progress: %v", ErrConnect, ctx.Err())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.ch == nil {
		return nil, p.redialErr
	}
	return p.ch, nil
}

// reconnect выполняется в отдельной горутине и не зависит от контекста запроса
func (p *Publisher) reconnect(done chan struct{}) {
	p.mu.Lock()
	old := p.conn
	p.conn, p.ch = nil, nil
	p.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, ch, err := p.dial(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(done)

	p.redial = nil
	p.redialErr = err

	if err != nil {
		p.log.Error("Events publisher: reconnect failed: %v", err)
		return
	}
	if p.closed {
		_ = ch.Close()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}

	p.conn, p.ch = conn, ch
	p.log.Info("Events publisher: reconnected, exchange=%s", p.exchange)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда события отключены
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, domain.ReservationEvent) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
