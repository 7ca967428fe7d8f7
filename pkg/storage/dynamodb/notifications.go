package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/behavior-points/pkg/models"
)

// SaveNotification stores a notification once per event ID.
// It returns false without error when the event was already stored.
func (s *Store) SaveNotification(ctx context.Context, n *models.Notification) (bool, error) {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return false, fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Notifications),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, fmt.Errorf("failed to put notification: %w", err)
	}
	return true, nil
}
