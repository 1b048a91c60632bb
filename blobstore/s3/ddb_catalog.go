package s3

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/meshdesc/bulkdata"
)

// ErrConcurrentModification is returned when a concurrent commit is detected.
var ErrConcurrentModification = bulkdata.ErrConcurrentModification

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DDBCatalog implements bulkdata.Catalog on DynamoDB. Every commit is a new
// item keyed by asset and version; a conditional write on the version gives
// the compare-and-swap that S3 lacks, so many writers can share one catalog.
//
// Table schema:
//   - Partition key: asset (string)
//   - Sort key: version (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name meshdesc-catalog \
//	  --attribute-definitions AttributeName=asset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=asset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCatalog struct {
	client    DDBClient
	tableName string
}

// NewDDBCatalog creates a catalog backed by tableName.
func NewDDBCatalog(client DDBClient, tableName string) *DDBCatalog {
	return &DDBCatalog{client: client, tableName: tableName}
}

// NewDDBCatalogFromConfig creates a catalog using the default AWS
// credential chain.
func NewDDBCatalogFromConfig(ctx context.Context, tableName string, optFns ...Option) (*DDBCatalog, error) {
	var o newOptions
	for _, fn := range optFns {
		fn(&o)
	}
	cfg, err := loadAWSConfig(ctx, o)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(opts *dynamodb.Options) {
		if o.endpoint != "" {
			opts.BaseEndpoint = aws.String(o.endpoint)
		}
	})
	return NewDDBCatalog(client, tableName), nil
}

var _ bulkdata.Catalog = (*DDBCatalog)(nil)

// Lookup returns the latest committed entry of asset.
func (c *DDBCatalog) Lookup(ctx context.Context, asset string) (bulkdata.Entry, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("asset = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a": &types.AttributeValueMemberS{Value: asset},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return bulkdata.Entry{}, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return bulkdata.Entry{}, fmt.Errorf("%w: %s", bulkdata.ErrAssetNotFound, asset)
	}
	return decodeEntry(resp.Items[0])
}

// Commit writes ref as version expected+1 of asset.
func (c *DDBCatalog) Commit(ctx context.Context, asset string, ref bulkdata.Ref, expected uint64) (bulkdata.Entry, error) {
	var current uint64
	e, err := c.Lookup(ctx, asset)
	switch {
	case err == nil:
		current = e.Version
	case !errors.Is(err, bulkdata.ErrAssetNotFound):
		return bulkdata.Entry{}, err
	}
	if current != expected {
		return bulkdata.Entry{}, fmt.Errorf("%w: %s is at version %d, expected %d", ErrConcurrentModification, asset, current, expected)
	}

	e = bulkdata.Entry{Asset: asset, Version: expected + 1, Ref: ref}
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                encodeEntry(e),
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return bulkdata.Entry{}, fmt.Errorf("%w: %s version %d", ErrConcurrentModification, asset, e.Version)
		}
		return bulkdata.Entry{}, fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return e, nil
}

// Assets returns the names of all assets with at least one commit.
func (c *DDBCatalog) Assets(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	paginator := dynamodb.NewScanPaginator(c.client, &dynamodb.ScanInput{
		TableName:            aws.String(c.tableName),
		ProjectionExpression: aws.String("asset"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan DynamoDB: %w", err)
		}
		for _, item := range page.Items {
			if a, ok := item["asset"].(*types.AttributeValueMemberS); ok {
				seen[a.Value] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func encodeEntry(e bulkdata.Entry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"asset":        &types.AttributeValueMemberS{Value: e.Asset},
		"version":      &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Version, 10)},
		"hash":         &types.AttributeValueMemberS{Value: e.Ref.Hash},
		"key":          &types.AttributeValueMemberS{Value: e.Ref.Key},
		"size":         &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Ref.Size, 10)},
		"stored_size":  &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Ref.StoredSize, 10)},
		"compression":  &types.AttributeValueMemberS{Value: e.Ref.Compression},
		"guid":         &types.AttributeValueMemberS{Value: e.Ref.GUID},
		"guid_is_hash": &types.AttributeValueMemberBOOL{Value: e.Ref.GUIDIsHash},
	}
}

func decodeEntry(item map[string]types.AttributeValue) (bulkdata.Entry, error) {
	var (
		e   bulkdata.Entry
		err error
	)
	str := func(name string) string {
		if v, ok := item[name].(*types.AttributeValueMemberS); ok {
			return v.Value
		}
		if err == nil {
			err = fmt.Errorf("invalid %s attribute in DynamoDB", name)
		}
		return ""
	}
	num := func(name string) int64 {
		v, ok := item[name].(*types.AttributeValueMemberN)
		if !ok {
			if err == nil {
				err = fmt.Errorf("invalid %s attribute in DynamoDB", name)
			}
			return 0
		}
		n, perr := strconv.ParseInt(v.Value, 10, 64)
		if perr != nil && err == nil {
			err = fmt.Errorf("failed to parse %s: %w", name, perr)
		}
		return n
	}

	e.Asset = str("asset")
	e.Version = uint64(num("version"))
	e.Ref.Hash = str("hash")
	e.Ref.Key = str("key")
	e.Ref.Size = num("size")
	e.Ref.StoredSize = num("stored_size")
	e.Ref.Compression = str("compression")
	e.Ref.GUID = str("guid")
	if b, ok := item["guid_is_hash"].(*types.AttributeValueMemberBOOL); ok {
		e.Ref.GUIDIsHash = b.Value
	}
	return e, err
}
