package app

import (
	"log"

	"travelex/internal/config"
	"travelex/internal/events"
)

// NewPublisher returns a Kafka publisher when brokers are configured and a
// log publisher otherwise.
func NewPublisher(cfg config.EventsConfig) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("No Kafka brokers configured, logging events")
		return events.NewLogPublisher()
	}
	log.Printf("Publishing events to Kafka topic %s", cfg.KafkaTopic)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
