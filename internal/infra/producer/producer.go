package producer

import (
	"context"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer interface defines the methods that a Kafka producer must implement
type Producer interface {
	// Produce sends messages to Kafka
	Produce(ctx context.Context, msgs []kafka.Message) error
	// Close closes the producer
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	MaxAttempts  int
}

func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:      brokers,
		Topic:        topic,
		BatchSize:    100,
		BatchTimeout: time.Second,
		RequiredAcks: -1, // 等待所有副本確認
		MaxAttempts:  3,
	}
}

// kafkaProducer implements the Producer interface
type kafkaProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

// New creates a new Kafka producer
func New(cfg *Config) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        false,

		// 重試機制設置
		MaxAttempts: cfg.MaxAttempts,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second, // 連接超時
					DualStack: true,             // 支援 IPv4/IPv6
					KeepAlive: 30 * time.Second, // TCP keepalive
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		// 錯誤處理
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),

		// 壓縮設置
		Compression: kafka.Snappy,
	}

	return &kafkaProducer{
		writer: writer,
	}
}

// Produce implements the Producer interface
// 同步發送消息，會block到所有消息都寫入
func (p *kafkaProducer) Produce(ctx context.Context, msgs []kafka.Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	if len(msgs) == 0 {
		return nil
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

// Close implements the Producer interface
func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
