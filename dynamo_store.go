package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements KV using DynamoDB. Each key is one item:
// PK, value (binary), version (number), updatedAt.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoStore creates a DynamoDB client and returns a DynamoStore.
func NewDynamoStore(ctx context.Context, cfg Config) (*DynamoStore, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.AWSRegion))

	if cfg.DynamoEndpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(cfg.DynamoEndpoint))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &DynamoStore{
		client:    dynamodb.NewFromConfig(awsCfg),
		tableName: cfg.DynamoTableName,
	}, nil
}

func (s *DynamoStore) Get(ctx context.Context, key string) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Item{}, fmt.Errorf("GetItem: %w", err)
	}

	if out.Item == nil {
		return Item{}, ErrNotFound
	}

	return unmarshalItem(key, out.Item)
}

func (s *DynamoStore) Put(ctx context.Context, key string, value []byte, expectVersion int64) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	next := expectVersion + 1

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"PK":        &types.AttributeValueMemberS{Value: key},
			"value":     &types.AttributeValueMemberB{Value: value},
			"version":   &types.AttributeValueMemberN{Value: strconv.FormatInt(next, 10)},
			"updatedAt": &types.AttributeValueMemberS{Value: now},
		},
	}

	if expectVersion == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(PK)")
	} else {
		input.ConditionExpression = aws.String("#v = :expected")
		input.ExpressionAttributeNames = map[string]string{"#v": "version"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectVersion, 10)},
		}
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return 0, ErrVersionConflict
		}
		return 0, fmt.Errorf("PutItem: %w", err)
	}

	return next, nil
}

func (s *DynamoStore) Close() error { return nil }

// unmarshalItem extracts the value and version attributes from a DynamoDB item.
func unmarshalItem(key string, item map[string]types.AttributeValue) (Item, error) {
	valueAttr, ok := item["value"].(*types.AttributeValueMemberB)
	if !ok {
		return Item{}, fmt.Errorf("value attribute is not binary")
	}

	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return Item{}, fmt.Errorf("version attribute is not a number")
	}

	version, err := strconv.ParseInt(versionAttr.Value, 10, 64)
	if err != nil {
		return Item{}, fmt.Errorf("parsing version: %w", err)
	}

	return Item{Key: key, Value: valueAttr.Value, Version: version}, nil
}
