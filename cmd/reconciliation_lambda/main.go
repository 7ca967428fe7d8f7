package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/balance"
	"github.com/chris/behavior-points/pkg/config"
	dydbstore "github.com/chris/behavior-points/pkg/storage/dynamodb"
	log "github.com/sirupsen/logrus"
)

const actor = "reconciliation-lambda"

var engine *balance.Engine

func init() {
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
		Transactions: cfg.TransactionsTable,
		Balances:     cfg.BalancesTable,
	})
	engine = balance.NewEngine(store, store)
}

// HandleRequest is triggered by an EventBridge Schedule and force-syncs every balance.
func HandleRequest(ctx context.Context) (balance.SweepReport, error) {
	log.Info("Starting balance reconciliation sweep")

	report, err := engine.SweepAll(ctx, access.ForSystem(actor))
	if err != nil {
		log.WithError(err).Error("Reconciliation sweep failed")
		return report, err
	}
	if report.Failed > 0 {
		return report, fmt.Errorf("reconciliation failed for %d of %d subjects", report.Failed, report.Subjects)
	}
	return report, nil
}

func main() {
	lambda.Start(HandleRequest)
}
