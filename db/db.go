package db

import (
	"strconv"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// MaxBatch is the most keys DynamoDB accepts in one BatchGetItem call.
const MaxBatch = 100

const maxAttempts = 3

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

func metadataFromItem(item map[string]*dynamodb.AttributeValue) (model.FileMetadata, bool) {
	var m model.FileMetadata
	pk, ok := item["PK"]
	if !ok || pk.S == nil {
		return m, false
	}
	m.Filename = *pk.S

	str := func(name string) string {
		if v, ok := item[name]; ok {
			return aws.StringValue(v.S)
		}
		return ""
	}
	m.Title = str("Title")
	m.Game = str("Game")
	m.Composer = str("Composer")
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		m.Year = uint(year)
	}
	return m, true
}

// GetFileMetadatas looks up metadata rows keyed by file name. Names with no
// row are left out of the result.
func GetFileMetadatas(filenames []string) (model.FilenameToMetadata, error) {
	if len(filenames) > MaxBatch {
		return nil, errors.Errorf("at most %d filenames per lookup, got %d", MaxBatch, len(filenames))
	}

	res := make(model.FilenameToMetadata)
	if len(filenames) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	table := constants.GetMetadataTable()
	requestItems := map[string]*dynamodb.KeysAndAttributes{
		table: {Keys: keys},
	}
	for attempt := 0; attempt < maxAttempts && len(requestItems) > 0; attempt++ {
		out, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: requestItems})
		if err != nil {
			return nil, errors.Wrap(err, "error from DynamoDB")
		}
		for _, item := range out.Responses[table] {
			if m, ok := metadataFromItem(item); ok {
				res[m.Filename] = m
			}
		}
		requestItems = out.UnprocessedKeys
	}

	return res, nil
}
