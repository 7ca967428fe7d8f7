package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/behavior-points/pkg/models"
	log "github.com/sirupsen/logrus"
)

// sortKeyLayout is fixed width so sort keys compare lexically in time order.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

// sortKey orders a subject's rows by creation time, with the id breaking ties.
func sortKey(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(sortKeyLayout) + "#" + id
}

// AppendTransaction writes one immutable ledger row. An existing row with the same key is never overwritten.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.PointsTransaction) error {
	tx.SortKey = sortKey(tx.CreatedAt, tx.Id)

	log.WithFields(log.Fields{"subject_id": tx.SubjectId, "transaction_id": tx.Id}).Debug("appending transaction")

	item, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Transactions),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(sk)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put transaction: %w", err)
	}
	return nil
}
