package config

import "os"

// BrokerConfig points at the RabbitMQ broker used for upload notifications.
type BrokerConfig struct {
	URL string
}

// LoadBrokerConfig reads RABBITMQ_URL, falling back to AMQP_URL.  An empty
// URL disables notifications.
func LoadBrokerConfig() BrokerConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return BrokerConfig{URL: url}
}

// Enabled reports whether a broker URL was configured.
func (c BrokerConfig) Enabled() bool { return c.URL != "" }
