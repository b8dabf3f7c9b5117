// Package dynamo stores catalog records as DynamoDB items keyed by "id".
package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"visitjo/internal/domain"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type Store struct {
	api API
}

func New(api API) *Store { return &Store{api: api} }

// NewFromConfig builds a client from the default AWS credential chain.
// A non-empty endpoint points it at a local DynamoDB.
func NewFromConfig(ctx context.Context, region, endpoint string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if strings.TrimSpace(endpoint) != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return New(client), nil
}

func (s *Store) PutHotel(ctx context.Context, table string, h domain.Hotel) error {
	if err := domain.ValidateTable(table); err != nil {
		return err
	}
	item, err := marshalHotel(h)
	if err != nil {
		return err
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return err
}

func (s *Store) GetHotel(ctx context.Context, table, id string) (domain.Hotel, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.Hotel{}, err
	}
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	if len(out.Item) == 0 {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return unmarshalHotel(out.Item)
}

func (s *Store) ScanHotels(ctx context.Context, table string, limit int, cursor string) (domain.HotelsPage, error) {
	if err := domain.ValidateTable(table); err != nil {
		return domain.HotelsPage{}, err
	}
	if limit < 1 {
		limit = 1
	}
	in := &dynamodb.ScanInput{
		TableName: aws.String(table),
		Limit:     aws.Int32(int32(limit)),
	}
	if after := domain.DecodeCursor(cursor); after != "" {
		in.ExclusiveStartKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: after}}
	}
	out, err := s.api.Scan(ctx, in)
	if err != nil {
		return domain.HotelsPage{}, err
	}

	page := domain.HotelsPage{Items: make([]domain.Hotel, 0, len(out.Items))}
	for _, item := range out.Items {
		h, err := unmarshalHotel(item)
		if err != nil {
			return domain.HotelsPage{}, err
		}
		page.Items = append(page.Items, h)
	}
	if id, ok := out.LastEvaluatedKey["id"].(*types.AttributeValueMemberS); ok && id.Value != "" {
		next := domain.EncodeCursor(id.Value)
		page.NextCursor = &next
	}
	return page, nil
}

// Items mirror the record's JSON document so every client reads the same attribute names.
func marshalHotel(h domain.Hotel) (map[string]types.AttributeValue, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal item %s: %w", h.ID, err)
	}
	return item, nil
}

func unmarshalHotel(item map[string]types.AttributeValue) (domain.Hotel, error) {
	var doc map[string]any
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return domain.Hotel{}, fmt.Errorf("unmarshal item: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return domain.Hotel{}, err
	}
	var h domain.Hotel
	if err := json.Unmarshal(b, &h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}
