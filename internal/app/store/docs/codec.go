package docs

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Encode turns a typed model into a field map using its bson tags.
func Encode(v any) (map[string]any, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return plainFields(m), nil
}

// Decode fills a typed model from a document. The document ID is exposed
// to the model as the "id" field unless the fields already carry one.
func Decode(doc Doc, v any) error {
	fields := Clone(doc.Fields)
	if fields == nil {
		fields = make(map[string]any)
	}
	if _, ok := fields["id"]; !ok && doc.ID != "" {
		fields["id"] = doc.ID
	}
	raw, err := bson.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	if err := bson.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	return nil
}
