package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/storefront/internal/catalog"
)

// DynamoAPI is the subset of the DynamoDB client the Store depends on.
// *dynamodb.Client satisfies it; tests supply fakes.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store performs product persistence against a single DynamoDB table.
type Store struct {
	client DynamoAPI
	config Config
}

// New creates a Store. Zero config values fall back to defaults.
func New(client DynamoAPI, config Config) *Store {
	config.validate()
	return &Store{client: client, config: config}
}

// NewClient builds the DynamoDB client the Store runs on. A non-empty
// endpoint points the client somewhere other than the real service, such
// as a local container.
func NewClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// SearchInput describes one page request against the catalog.
type SearchInput struct {
	// Query is the case-sensitive substring matched against name and
	// description. Empty means no filter.
	Query string

	// Limit caps how many records the scan evaluates for this page.
	Limit int32

	// Cursor resumes a prior page. Empty starts from the beginning.
	Cursor string
}

// SearchResult is one page of records plus the resume cursor.
type SearchResult struct {
	Products []catalog.Product

	// NextCursor is empty once the table is exhausted.
	NextCursor string
}

// Create assigns a fresh identifier and writes the record. The put is
// unconditional: identifiers are generated here, never taken from the
// caller, so there is no existing record to collide with.
func (s *Store) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	p.ID = uuid.NewString()
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.Table),
		Item:      item,
	})
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// Get fetches the product stored under id.
func (s *Store) Get(ctx context.Context, id string) (catalog.Product, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.Table),
		Key:       productKey(id),
	})
	if err != nil {
		return catalog.Product{}, err
	}
	if out.Item == nil {
		return catalog.Product{}, ErrNotFound
	}
	var p catalog.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("unmarshal product: %w", err)
	}
	return p, nil
}

// Update replaces the record stored under p.ID. The put is conditional on
// the id already existing, so updating a missing product returns
// ErrNotFound and never creates anything.
func (s *Store) Update(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return catalog.Product{}, ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

// Delete removes the record stored under id, conditionally on it existing.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.Table),
		Key:                 productKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Search issues a single scan for one page of records. A short or even
// empty page with a non-empty NextCursor is normal under a filter; the
// caller decides whether to come back for more.
func (s *Store) Search(ctx context.Context, in SearchInput) (SearchResult, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.config.Table),
	}
	if in.Limit > 0 {
		input.Limit = aws.Int32(in.Limit)
	}
	applyQueryFilter(input, in.Query)
	if in.Cursor != "" {
		startKey, err := decodeCursor(in.Cursor)
		if err != nil {
			return SearchResult{}, ErrBadCursor
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return SearchResult{}, err
	}

	var products []catalog.Product
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &products); err != nil {
		return SearchResult{}, fmt.Errorf("unmarshal page: %w", err)
	}

	next, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Products: products, NextCursor: next}, nil
}

// Count scans the whole table under the same query filter and returns the
// total match count. The scan follows every resume key, so the number is
// exact but costs a full table read.
func (s *Store) Count(ctx context.Context, query string) (int, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.config.Table),
		Select:    types.SelectCount,
	}
	applyQueryFilter(input, query)

	total := 0
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// applyQueryFilter narrows a scan to records whose name or description
// contains the query. contains() compares byte-wise, so matching is
// case-sensitive.
func applyQueryFilter(input *dynamodb.ScanInput, query string) {
	if query == "" {
		return
	}
	input.FilterExpression = aws.String("contains(#name, :q) OR contains(#description, :q)")
	input.ExpressionAttributeNames = map[string]string{
		"#name":        "name",
		"#description": "description",
	}
	input.ExpressionAttributeValues = map[string]types.AttributeValue{
		":q": &types.AttributeValueMemberS{Value: query},
	}
}

func productKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
