package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Integration tests require DynamoDB Local running on DYNAMODB_ENDPOINT.
// Run with: DYNAMODB_ENDPOINT=http://localhost:8000 go test -run Dynamo ./...

func skipIfNoEndpoint(t *testing.T) {
	t.Helper()
	if os.Getenv("DYNAMODB_ENDPOINT") == "" {
		t.Skip("DYNAMODB_ENDPOINT not set; skipping integration test")
	}
}

func testDynamoStore(t *testing.T) *DynamoStore {
	t.Helper()
	cfg := Config{
		AWSRegion:       "us-east-1",
		DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		DynamoTableName: "movieapp-kv-test",
	}
	// Dummy credentials for DynamoDB Local
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	ctx := context.Background()
	store, err := NewDynamoStore(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	_, err = store.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(cfg.DynamoTableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		t.Fatalf("failed to create table: %v", err)
	}

	return store
}

func TestIntegration_DynamoContract(t *testing.T) {
	skipIfNoEndpoint(t)
	testKVContract(t, testDynamoStore(t))
}

func TestIntegration_DynamoFavoritesRoundTrip(t *testing.T) {
	skipIfNoEndpoint(t)
	store := testDynamoStore(t)
	ctx := context.Background()
	favorites := NewFavoritesStore(store, testLogger())
	userID := "integration-" + t.Name()

	if _, err := favorites.Add(ctx, userID, 42, Movie{Title: "X"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !favorites.IsFavorited(ctx, userID, 42) {
		t.Fatal("expected movie 42 to be favorited")
	}

	favorites.Remove(ctx, userID, 42)
	if favorites.IsFavorited(ctx, userID, 42) {
		t.Fatal("expected movie 42 to be removed")
	}
}

func TestUnmarshalItem(t *testing.T) {
	item, err := unmarshalItem("k", map[string]types.AttributeValue{
		"PK":      &types.AttributeValueMemberS{Value: "k"},
		"value":   &types.AttributeValueMemberB{Value: []byte(`[]`)},
		"version": &types.AttributeValueMemberN{Value: "7"},
	})
	if err != nil {
		t.Fatalf("unmarshalItem: %v", err)
	}
	if string(item.Value) != `[]` || item.Version != 7 {
		t.Fatalf("unexpected item: %+v", item)
	}

	_, err = unmarshalItem("k", map[string]types.AttributeValue{
		"value": &types.AttributeValueMemberS{Value: "not binary"},
	})
	if err == nil {
		t.Fatal("expected error for non-binary value")
	}
}
