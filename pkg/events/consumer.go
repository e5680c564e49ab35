package events

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/adjust/rmq/v5"
	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/elastic_client"
	"github.com/rs/zerolog/log"
)

type BatchConsumer struct {
	IndexName string

	index func(indexName string, document io.ReadSeeker)
}

func NewBatchConsumer(indexName string) *BatchConsumer {
	return &BatchConsumer{
		IndexName: indexName,
		index:     elastic_client.IndexRequest,
	}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var event ctdf.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		document, err := json.Marshal(event.ElasticDocument())
		if err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to encode event document")
			continue
		}

		consumer.index(consumer.IndexName, bytes.NewReader(document))
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack events")
		}
	}
}
