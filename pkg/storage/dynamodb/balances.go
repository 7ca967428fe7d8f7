package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/behavior-points/pkg/models"
)

// GetBalance retrieves the cached balance for a subject.
func (s *Store) GetBalance(ctx context.Context, subjectID string) (*models.BalanceRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"subject_id": subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal subject ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Balances),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, models.ErrNotFound
	}

	var record models.BalanceRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance: %w", err)
	}
	return &record, nil
}

// ListBalances returns every cached balance.
func (s *Store) ListBalances(ctx context.Context) ([]models.BalanceRecord, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.Tables.Balances)}

	var records []models.BalanceRecord
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balances: %w", err)
		}
		var page []models.BalanceRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal balances: %w", err)
		}
		records = append(records, page...)
		if len(result.LastEvaluatedKey) == 0 {
			return records, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// UpsertBalance replaces the cached balance for a subject.
func (s *Store) UpsertBalance(ctx context.Context, record *models.BalanceRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal balance: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Balances),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put balance: %w", err)
	}
	return nil
}
