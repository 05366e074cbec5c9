package api

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Catalog перечисляет все тела сообщений протокола. Используется только
// как корень для генерации JSON-схемы.
type Catalog struct {
	Join    JoinPayload    `json:"join" jsonschema:"description=client to server: register a player"`
	Update  UpdatePayload  `json:"update" jsonschema:"description=client to server: overwrite the player state"`
	Players PlayersPayload `json:"players" jsonschema:"description=server to clients: full snapshot after every change"`
	Error   ErrorPayload   `json:"error" jsonschema:"description=server to client: message rejected without state change"`
}

// Schema строит JSON-схему тел сообщений.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Catalog))
	schema.Title = "Tap Dash relay protocol"
	schema.Description = `Payloads carried in {"type": <kind>, "payload": <body>} envelopes; serverFull has no payload`
	return schema
}

// SchemaJSON - схема, сериализованная с отступами (для /schema и tools/schemagen).
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
