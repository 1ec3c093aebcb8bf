package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shoestore.cart",
	"name": "cart_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "quantity", "type": "int"},
		{"name": "total", "type": "double"},
		{"name": "item_count", "type": "int"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type CartEventV1 struct {
	EventID    string    `avro:"event_id"`
	Kind       string    `avro:"kind"`
	ProductID  int64     `avro:"product_id"`
	Quantity   int       `avro:"quantity"`
	Total      float64   `avro:"total"`
	ItemCount  int       `avro:"item_count"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// CartEventV1Avro panics if the schema text is invalid.
func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}
