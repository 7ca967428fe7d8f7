package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage/dynamodb/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAppendTransaction(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}
		tx := &models.PointsTransaction{Id: "tx-1", SubjectId: "student-1", Amount: 5, Sign: models.POSITIVE, CreatedAt: createdAt}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			sk, ok := in.Item["sk"].(*types.AttributeValueMemberS)
			return *in.TableName == "transactions" && ok && sk.Value == "2024-03-01T09:30:00.000000000Z#tx-1" &&
				*in.ConditionExpression == "attribute_not_exists(sk)"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		err := store.AppendTransaction(context.Background(), tx)

		assert.NoError(t, err)
		assert.Equal(t, "2024-03-01T09:30:00.000000000Z#tx-1", tx.SortKey)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put failed")).Once()

		err := store.AppendTransaction(context.Background(), &models.PointsTransaction{Id: "tx-1", CreatedAt: createdAt})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put transaction")
		mockClient.AssertExpectations(t)
	})
}

func TestSortKeyOrdering(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 30, 5, 0, time.UTC)
	earlier := sortKey(base, "b")
	later := sortKey(base.Add(100*time.Millisecond), "a")

	assert.Less(t, earlier, later)
	assert.Less(t, sortKey(base, "a"), sortKey(base, "b"))
}

func TestListTransactions(t *testing.T) {
	txs := []models.PointsTransaction{
		{Id: uuid.New().String(), SubjectId: "student-1", Amount: 3, Sign: models.POSITIVE},
		{Id: uuid.New().String(), SubjectId: "student-1", Amount: 1, Sign: models.NEGATIVE},
	}

	marshal := func(t *testing.T, items []models.PointsTransaction) []map[string]types.AttributeValue {
		var out []map[string]types.AttributeValue
		for _, tx := range items {
			av, err := attributevalue.MarshalMap(tx)
			assert.NoError(t, err)
			out = append(out, av)
		}
		return out
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return !*in.ScanIndexForward && in.FilterExpression == nil
		})).Return(&dynamodb.QueryOutput{Items: marshal(t, txs)}, nil).Once()

		result, err := store.ListTransactions(context.Background(), "student-1", models.TransactionFilter{})

		assert.NoError(t, err)
		assert.Equal(t, txs, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Paginates And Applies Limit", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}
		lastKey := map[string]types.AttributeValue{"sk": &types.AttributeValueMemberS{Value: "k"}}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{Items: marshal(t, txs[:1]), LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{Items: marshal(t, txs[1:]), LastEvaluatedKey: lastKey}, nil).Once()

		result, err := store.ListTransactions(context.Background(), "student-1", models.TransactionFilter{Limit: 2})

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed")).Once()

		_, err := store.ListTransactions(context.Background(), "student-1", models.TransactionFilter{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query transactions")
		mockClient.AssertExpectations(t)
	})
}

func TestBuildListQuery(t *testing.T) {
	sign := models.NEGATIVE
	category := "homework"
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	in := buildListQuery("transactions", "student-1", models.TransactionFilter{
		Sign: &sign, CategoryId: &category, Since: &since, Until: &until,
	})

	assert.Equal(t, "subject_id = :subject AND sk BETWEEN :since AND :until", *in.KeyConditionExpression)
	assert.Equal(t, "#sign = :sign AND category_id = :category", *in.FilterExpression)
	assert.Equal(t, "sign", in.ExpressionAttributeNames["#sign"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-02-01T00:00:00.000000000Z#~"}, in.ExpressionAttributeValues[":until"])
}

func TestCountTransactions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.Select == types.SelectCount
		})).Return(&dynamodb.QueryOutput{Count: 7}, nil).Once()

		count, err := store.CountTransactions(context.Background(), "student-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed")).Once()

		_, err := store.CountTransactions(context.Background(), "student-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count transactions")
		mockClient.AssertExpectations(t)
	})
}

func TestListSubjects(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, Tables: Tables{Transactions: "transactions"}}

	items := []map[string]types.AttributeValue{
		{"subject_id": &types.AttributeValueMemberS{Value: "a"}},
		{"subject_id": &types.AttributeValueMemberS{Value: "b"}},
		{"subject_id": &types.AttributeValueMemberS{Value: "a"}},
	}
	mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: items}, nil).Once()

	subjects, err := store.ListSubjects(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, subjects)
	mockClient.AssertExpectations(t)
}
