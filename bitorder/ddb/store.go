package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/grovego/bitorder"
	"github.com/hupe1980/grovego/codec"
)

// Client is the interface for DynamoDB operations, substitutable in tests.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentUpdate is returned when two writers race on the same
// calibration version.
var ErrConcurrentUpdate = errors.New("concurrent calibration update detected")

// ErrNoCalibration is returned when no report has been stored for the
// backend yet.
var ErrNoCalibration = errors.New("no calibration stored")

// Store persists versioned calibration reports.
//
// Table schema:
//   - Partition key: backend (string) - the backend name
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name grovego-calibrations \
//	  --attribute-definitions AttributeName=backend,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=backend,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Store struct {
	client    Client
	tableName string
	backend   string
	codec     codec.Codec
}

// NewStore creates a calibration store for one backend.
func NewStore(client Client, tableName, backendName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		backend:   backendName,
		codec:     codec.Default,
	}
}

// Save stores a new calibration report under the next version.
// Uses a conditional write so racing writers cannot overwrite each other.
func (s *Store) Save(ctx context.Context, report *bitorder.ProbeReport) (uint64, error) {
	current, _, err := s.latest(ctx)
	if err != nil && !errors.Is(err, ErrNoCalibration) {
		return 0, err
	}
	newVersion := current + 1

	payload, err := s.codec.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"backend": &types.AttributeValueMemberS{Value: s.backend},
			"version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", newVersion)},
			"codec":   &types.AttributeValueMemberS{Value: s.codec.Name()},
			"report":  &types.AttributeValueMemberB{Value: payload},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentUpdate
		}
		return 0, fmt.Errorf("store calibration: %w", err)
	}
	return newVersion, nil
}

// Latest returns the most recent calibration report and its version.
func (s *Store) Latest(ctx context.Context) (*bitorder.ProbeReport, uint64, error) {
	version, item, err := s.latest(ctx)
	if err != nil {
		return nil, 0, err
	}

	codecAttr, ok := item["codec"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, 0, errors.New("invalid codec attribute")
	}
	c, ok := codec.ByName(codecAttr.Value)
	if !ok {
		return nil, 0, fmt.Errorf("unknown codec: %s", codecAttr.Value)
	}

	payloadAttr, ok := item["report"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, 0, errors.New("invalid report attribute")
	}

	var report bitorder.ProbeReport
	if err := c.Unmarshal(payloadAttr.Value, &report); err != nil {
		return nil, 0, fmt.Errorf("decode report: %w", err)
	}
	return &report, version, nil
}

func (s *Store) latest(ctx context.Context) (uint64, map[string]types.AttributeValue, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("backend = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: s.backend},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, nil, fmt.Errorf("query calibration: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, nil, ErrNoCalibration
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil, errors.New("invalid version attribute")
	}
	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, nil, fmt.Errorf("parse version: %w", err)
	}
	return version, item, nil
}
