package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"shopcore/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Archiver implements Archiver by uploading invoice JSON to AWS S3.
type s3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Archiver creates a new S3-based invoice archiver.
func NewS3Archiver(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Archiver, error) {
	logger = logger.With().Str("component", "s3-invoice-archiver").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 archiver initialised")

	return &s3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// StoreInvoice uploads the invoice as a JSON object keyed by its sequential
// number, e.g. "invoices/invoice-000101.json".
func (a *s3Archiver) StoreInvoice(ctx context.Context, invoice *model.Invoice) error {
	body, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}

	key := fmt.Sprintf("%sinvoice-%06d.json", a.prefix, invoice.InvoiceNumber)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to upload invoice to S3")
		return fmt.Errorf("failed to upload invoice to S3: %w", err)
	}

	a.logger.Info().
		Str("key", key).
		Int("invoice_number", invoice.InvoiceNumber).
		Msg("invoice archived")

	return nil
}
