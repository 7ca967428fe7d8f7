package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/behavior-points/pkg/models"
)

// ListTransactions returns a subject's ledger rows, newest first.
// Time bounds become a key condition on the sort key; sign and category are filter expressions.
func (s *Store) ListTransactions(ctx context.Context, subjectID string, filter models.TransactionFilter) ([]models.PointsTransaction, error) {
	input := buildListQuery(s.Tables.Transactions, subjectID, filter)

	var transactions []models.PointsTransaction
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query transactions: %w", err)
		}

		var page []models.PointsTransaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		transactions = append(transactions, page...)

		if filter.Limit > 0 && len(transactions) >= filter.Limit {
			return transactions[:filter.Limit], nil
		}
		if len(result.LastEvaluatedKey) == 0 {
			return transactions, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

func buildListQuery(table, subjectID string, filter models.TransactionFilter) *dynamodb.QueryInput {
	keyCond := "subject_id = :subject"
	values := map[string]types.AttributeValue{
		":subject": &types.AttributeValueMemberS{Value: subjectID},
	}

	// "~" sorts after every character used in a sort key suffix.
	switch {
	case filter.Since != nil && filter.Until != nil:
		keyCond += " AND sk BETWEEN :since AND :until"
		values[":since"] = &types.AttributeValueMemberS{Value: filter.Since.UTC().Format(sortKeyLayout)}
		values[":until"] = &types.AttributeValueMemberS{Value: filter.Until.UTC().Format(sortKeyLayout) + "#~"}
	case filter.Since != nil:
		keyCond += " AND sk >= :since"
		values[":since"] = &types.AttributeValueMemberS{Value: filter.Since.UTC().Format(sortKeyLayout)}
	case filter.Until != nil:
		keyCond += " AND sk <= :until"
		values[":until"] = &types.AttributeValueMemberS{Value: filter.Until.UTC().Format(sortKeyLayout) + "#~"}
	}

	var filters []string
	names := map[string]string{}
	if filter.Sign != nil {
		filters = append(filters, "#sign = :sign")
		names["#sign"] = "sign"
		values[":sign"] = &types.AttributeValueMemberS{Value: string(*filter.Sign)}
	}
	if filter.CategoryId != nil {
		filters = append(filters, "category_id = :category")
		values[":category"] = &types.AttributeValueMemberS{Value: *filter.CategoryId}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(false), // Sort by created_at in descending order
	}
	if len(filters) > 0 {
		input.FilterExpression = aws.String(strings.Join(filters, " AND "))
		input.ExpressionAttributeNames = names
	}
	return input
}

// CountTransactions returns the number of ledger rows for a subject.
func (s *Store) CountTransactions(ctx context.Context, subjectID string) (int64, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Transactions),
		KeyConditionExpression: aws.String("subject_id = :subject"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subject": &types.AttributeValueMemberS{Value: subjectID},
		},
		Select: types.SelectCount,
	}

	var total int64
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count transactions: %w", err)
		}
		total += int64(result.Count)
		if len(result.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// ListSubjects returns every subject that has at least one ledger row.
func (s *Store) ListSubjects(ctx context.Context) ([]string, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(s.Tables.Transactions),
		ProjectionExpression: aws.String("subject_id"),
	}

	seen := make(map[string]struct{})
	var subjects []string
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transactions: %w", err)
		}
		var rows []struct {
			SubjectId string `dynamodbav:"subject_id"`
		}
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subjects: %w", err)
		}
		for _, r := range rows {
			if _, ok := seen[r.SubjectId]; !ok {
				seen[r.SubjectId] = struct{}{}
				subjects = append(subjects, r.SubjectId)
			}
		}
		if len(result.LastEvaluatedKey) == 0 {
			return subjects, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
