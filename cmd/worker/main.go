package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/aws"
	"github.com/imrishuroy/go-storefront/internal/config"
)

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)
	ctx := context.Background()

	clients, err := aws.NewAWSClients(ctx, cfg.AWSConfig.Region, cfg.AWSConfig.EndpointOverride)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init aws clients")
	}

	p := NewProcessor(clients, ProcessorConfig{
		OrdersTable:      cfg.AWSConfig.OrdersTable,
		IdempotencyTable: cfg.AWSConfig.IdempotencyTable,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		MetricsNamespace: cfg.AWSConfig.MetricsNamespace,
	})

	// RUN_LOCAL processes one message from LOCAL_SQS_BODY and exits.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"order_id":"local-order-1","idempotency_key":"local-key-1"}`
		}
		ev := events.SQSEvent{Records: []events.SQSMessage{{MessageId: "local", Body: body}}}
		if err := p.Handle(ctx, ev); err != nil {
			log.Fatal().Err(err).Msg("local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
