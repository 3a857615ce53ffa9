package cardsearch

import (
	"embed"
	"sync"

	"github.com/osse101/DeckBuilder_Go/internal/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const cardsResponseSchema = "schemas/cards_response.schema.json"

// responseSchemas compiles the embedded response schemas on first use
var responseSchemas = sync.OnceValues(func() (validation.SchemaValidator, error) {
	return validation.NewSchemaValidator(schemaFS, cardsResponseSchema)
})
