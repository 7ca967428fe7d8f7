package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/behavior-points/pkg/models"
)

// ListCatalog returns every medal and badge definition.
func (s *Store) ListCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.Tables.Catalog)}

	var items []models.CatalogItem
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		var page []models.CatalogItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog items: %w", err)
		}
		items = append(items, page...)
		if len(result.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// InsertAward records an award unless the subject already holds the item.
// The table is keyed on (subject_id, catalog_item_id), so concurrent inserts collapse to one row.
func (s *Store) InsertAward(ctx context.Context, award *models.AwardRecord) (bool, error) {
	item, err := attributevalue.MarshalMap(award)
	if err != nil {
		return false, fmt.Errorf("failed to marshal award: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Awards),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(catalog_item_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, fmt.Errorf("failed to put award: %w", err)
	}
	return true, nil
}

// ListAwards returns the awards held by a subject, newest first.
// The table's sort key is the catalog item, so ordering happens after the query.
func (s *Store) ListAwards(ctx context.Context, subjectID string) ([]models.AwardRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Awards),
		KeyConditionExpression: aws.String("subject_id = :subject"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subject": &types.AttributeValueMemberS{Value: subjectID},
		},
	}

	var awards []models.AwardRecord
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query awards: %w", err)
		}
		var page []models.AwardRecord
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal awards: %w", err)
		}
		awards = append(awards, page...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.Slice(awards, func(i, j int) bool {
		if awards[i].AwardedAt.Equal(awards[j].AwardedAt) {
			return awards[i].CatalogItemId < awards[j].CatalogItemId
		}
		return awards[i].AwardedAt.After(awards[j].AwardedAt)
	})
	return awards, nil
}
