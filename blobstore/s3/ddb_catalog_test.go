package s3

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/bulkdata"
)

func TestDDBCatalog_Lookup(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewDDBCatalog(mockDDB, "table")
	ref := bulkdata.Ref{Hash: "aa", Key: "bulk/aa/aa.bin", Size: 10, StoredSize: 7, Compression: "zstd", GUID: "g", GUIDIsHash: true}

	mockDDB.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		v := input.ExpressionAttributeValues[":a"].(*types.AttributeValueMemberS)
		return *input.TableName == "table" && v.Value == "crate" && !*input.ScanIndexForward
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{encodeEntry(bulkdata.Entry{Asset: "crate", Version: 3, Ref: ref})},
	}, nil).Once()

	e, err := catalog.Lookup(context.Background(), "crate")
	require.NoError(t, err)
	assert.Equal(t, bulkdata.Entry{Asset: "crate", Version: 3, Ref: ref}, e)

	mockDDB.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()
	_, err = catalog.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, bulkdata.ErrAssetNotFound)
	mockDDB.AssertExpectations(t)
}

func TestDDBCatalog_Commit(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewDDBCatalog(mockDDB, "table")
	ref := bulkdata.Ref{Hash: "bb", Key: "bulk/bb/bb.bin", GUID: "g"}

	t.Run("Success", func(t *testing.T) {
		mockDDB.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()
		mockDDB.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			v := input.Item["version"].(*types.AttributeValueMemberN)
			return v.Value == "1" && *input.ConditionExpression == "attribute_not_exists(version)"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		e, err := catalog.Commit(context.Background(), "crate", ref, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), e.Version)
	})

	t.Run("StaleVersion", func(t *testing.T) {
		mockDDB.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{encodeEntry(bulkdata.Entry{Asset: "crate", Version: 2, Ref: ref})},
		}, nil).Once()

		_, err := catalog.Commit(context.Background(), "crate", ref, 1)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("ConditionFailed", func(t *testing.T) {
		mockDDB.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()
		mockDDB.On("PutItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{}).Once()

		_, err := catalog.Commit(context.Background(), "crate", ref, 0)
		assert.ErrorIs(t, err, ErrConcurrentModification)
		assert.ErrorIs(t, err, bulkdata.ErrConcurrentModification)
	})

	t.Run("QueryError", func(t *testing.T) {
		mockDDB.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()
		_, err := catalog.Commit(context.Background(), "crate", ref, 0)
		assert.ErrorContains(t, err, "throttled")
	})

	mockDDB.AssertExpectations(t)
}

func TestDDBCatalog_Assets(t *testing.T) {
	mockDDB := new(MockDDBClient)
	catalog := NewDDBCatalog(mockDDB, "table")

	item := func(asset string) map[string]types.AttributeValue {
		return map[string]types.AttributeValue{"asset": &types.AttributeValueMemberS{Value: asset}}
	}
	mockDDB.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
		return input.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{item("crate"), item("barrel")},
		LastEvaluatedKey: item("barrel"),
	}, nil).Once()
	mockDDB.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
		return input.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{item("crate")},
	}, nil).Once()

	assets, err := catalog.Assets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"barrel", "crate"}, assets)
	mockDDB.AssertExpectations(t)
}

func TestDecodeEntryInvalid(t *testing.T) {
	_, err := decodeEntry(map[string]types.AttributeValue{
		"asset": &types.AttributeValueMemberS{Value: "crate"},
	})
	assert.Error(t, err)
}
