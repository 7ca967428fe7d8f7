package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/behavior-points/pkg/config"
	dydbstore "github.com/chris/behavior-points/pkg/storage/dynamodb"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetupLogging(cfg.LogLevel)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Notifications: cfg.NotificationsTable,
	})
	lambda.Start(NewConsumer(store).HandleRequest)
}
