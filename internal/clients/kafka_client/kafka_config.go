package kafka_client

import "os"

type KafkaConfig struct {
	Broker       string
	GroupID      string
	RequestTopic string
	ResultsTopic string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker:       getEnv("KAFKA_BROKER", "localhost:29092"),
		GroupID:      getEnv("KAFKA_CONSUMER_GROUP_ID", "sov-consumer-group"),
		RequestTopic: getEnv("KAFKA_REQUEST_TOPIC", KAFKA_TOPIC_ANALYSIS_REQUEST),
		ResultsTopic: getEnv("KAFKA_RESULTS_TOPIC", KAFKA_TOPIC_ANALYSIS_RESULTS),
	}
}
