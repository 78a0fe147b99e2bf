package db

import (
	"strconv"

	"github.com/jsphweid/ustkit/constants"
	"github.com/jsphweid/ustkit/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// DynamoDB batch limits.
const (
	maxBatchWrite = 25
	maxBatchGet   = 100
)

type Item = map[string]*dynamodb.AttributeValue

func number(f float64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(f, 'f', -1, 64))}
}

func summaryToItem(s model.Summary) Item {
	item := Item{
		"PK":     {S: aws.String(s.File)},
		"Tempo":  number(s.Tempo),
		"Notes":  number(float64(s.Notes)),
		"Voiced": number(float64(s.Voiced)),
		"Length": number(s.Length),
	}
	if s.ProjectName != "" {
		item["ProjectName"] = &dynamodb.AttributeValue{S: aws.String(s.ProjectName)}
	}
	if s.High != nil && s.Low != nil {
		item["High"] = number(float64(*s.High))
		item["Low"] = number(float64(*s.Low))
	}
	if s.Size > 0 {
		item["Size"] = number(float64(s.Size))
	}
	return item
}

func readNumber(item Item, key string) (float64, bool) {
	v, ok := item[key]
	if !ok || v.N == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(*v.N, 64)
	return f, err == nil
}

func itemToSummary(item Item) model.Summary {
	var s model.Summary
	if v, ok := item["PK"]; ok && v.S != nil {
		s.File = *v.S
	}
	if v, ok := item["ProjectName"]; ok && v.S != nil {
		s.ProjectName = *v.S
	}
	s.Tempo, _ = readNumber(item, "Tempo")
	s.Length, _ = readNumber(item, "Length")
	if n, ok := readNumber(item, "Notes"); ok {
		s.Notes = int(n)
	}
	if n, ok := readNumber(item, "Voiced"); ok {
		s.Voiced = int(n)
	}
	if n, ok := readNumber(item, "Size"); ok {
		s.Size = int64(n)
	}
	high, okHigh := readNumber(item, "High")
	low, okLow := readNumber(item, "Low")
	if okHigh && okLow {
		h, l := int(high), int(low)
		s.High, s.Low = &h, &l
	}
	return s
}

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

func chunks[T any](items []T, size int) [][]T {
	var res [][]T
	for size < len(items) {
		items, res = items[size:], append(res, items[:size])
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}

// PutSummaries stores summaries in the catalog table, keyed by file path.
func PutSummaries(summaries []model.Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	return putSummaries(client, summaries)
}

func putSummaries(client dynamodbiface.DynamoDBAPI, summaries []model.Summary) error {
	for _, batch := range chunks(summaries, maxBatchWrite) {
		var requests []*dynamodb.WriteRequest
		for _, s := range batch {
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: summaryToItem(s)},
			})
		}
		pending := map[string][]*dynamodb.WriteRequest{constants.CatalogTable: requests}
		for len(pending) > 0 {
			res, err := client.BatchWriteItem(&dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return errors.Wrap(err, "Error from DynamoDB")
			}
			pending = res.UnprocessedItems
		}
	}
	return nil
}

// GetSummaries looks up summaries by file path. Missing files are absent
// from the result.
func GetSummaries(files []string) (map[string]model.Summary, error) {
	if len(files) == 0 {
		return make(map[string]model.Summary), nil
	}
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return getSummaries(client, files)
}

func getSummaries(client dynamodbiface.DynamoDBAPI, files []string) (map[string]model.Summary, error) {
	res := make(map[string]model.Summary)
	for _, batch := range chunks(files, maxBatchGet) {
		var keys []Item
		for _, f := range batch {
			keys = append(keys, Item{"PK": {S: aws.String(f)}})
		}
		pending := map[string]*dynamodb.KeysAndAttributes{
			constants.CatalogTable: {Keys: keys},
		}
		for len(pending) > 0 {
			dbres, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, errors.Wrap(err, "Error from DynamoDB")
			}
			for _, v := range dbres.Responses[constants.CatalogTable] {
				s := itemToSummary(v)
				res[s.File] = s
			}
			pending = dbres.UnprocessedKeys
		}
	}
	return res, nil
}
