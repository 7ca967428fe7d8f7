package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/behavior-points/pkg/models"
)

// GetSession retrieves a session by its ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := s.getItem(ctx, s.Tables.Sessions, "id", sessionID, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetProfile retrieves the trusted role record for a user.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.getItem(ctx, s.Tables.Profiles, "user_id", userID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) getItem(ctx context.Context, table, keyName, keyValue string, out interface{}) error {
	key, err := attributevalue.MarshalMap(map[string]string{keyName: keyValue})
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", keyName, err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to get item from %s: %w", table, err)
	}
	if result.Item == nil {
		return models.ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
	}
	return nil
}
