package producers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/chrisdamba/surplussim/internal/models"
)

// SaramaProducer publishes topic records to Kafka. Topic names are prefixed
// with the configured prefix, e.g. "surplussim." + "bundles".
type SaramaProducer struct {
	producer sarama.SyncProducer
	prefix   string
}

func NewSaramaConfig(config *models.Config) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1 // required by Idempotent
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second
	saramaConfig.ClientID = "surplussim"

	if config.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}
	return saramaConfig
}

func NewSaramaProducer(config *models.Config) (*SaramaProducer, error) {
	brokerList := BrokerList(config.KafkaBrokerList)
	if len(brokerList) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	producer, err := sarama.NewSyncProducer(brokerList, NewSaramaConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer created successfully with brokers %v", brokerList)
	return NewSaramaProducerFrom(producer, config.KafkaTopicPrefix), nil
}

// NewSaramaProducerFrom wraps an existing producer, e.g. a sarama mock.
func NewSaramaProducerFrom(producer sarama.SyncProducer, prefix string) *SaramaProducer {
	return &SaramaProducer{producer: producer, prefix: prefix}
}

// BrokerList splits a comma separated broker list, dropping blanks.
func BrokerList(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (s *SaramaProducer) Topic(topic string) string {
	return s.prefix + topic
}

func (s *SaramaProducer) WriteMessage(topic string, msg []byte) error {
	if s.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}

	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.Topic(topic),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		log.Printf("Failed to send message to topic %s: %v", s.Topic(topic), err)
		return err
	}

	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
