package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Page cursors wrap DynamoDB's LastEvaluatedKey as an opaque token: the
// key map is flattened to plain values, JSON-encoded, then base64url
// encoded without padding. The products table keys on a string id, which
// round-trips exactly.

// encodeCursor turns a resume key into a token. An exhausted scan has no
// resume key and encodes to "".
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	flat := map[string]any{}
	if err := attributevalue.UnmarshalMap(key, &flat); err != nil {
		return "", fmt.Errorf("flatten resume key: %w", err)
	}
	buf, err := json.Marshal(flat)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// decodeCursor reverses encodeCursor. Any token that did not come out of
// encodeCursor fails here rather than reaching DynamoDB.
func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	buf, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(buf, &flat); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("decode cursor: empty resume key")
	}
	key, err := attributevalue.MarshalMap(flat)
	if err != nil {
		return nil, fmt.Errorf("rebuild resume key: %w", err)
	}
	return key, nil
}
