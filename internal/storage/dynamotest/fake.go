// Package dynamotest provides an in-memory stand-in for the DynamoDB
// PutItem/GetItem calls used by the repositories.
package dynamotest

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Fake is a single-table store keyed by one string attribute.
// Only "attribute_not_exists(<key>)" conditions are understood.
type Fake struct {
	mu      sync.Mutex
	KeyAttr string
	Items   map[string]map[string]types.AttributeValue
	Puts    int
	// Err, when set, is returned from every call.
	Err error
}

func New(keyAttr string) *Fake {
	return &Fake{KeyAttr: keyAttr, Items: make(map[string]map[string]types.AttributeValue)}
}

func (f *Fake) key(item map[string]types.AttributeValue) (string, error) {
	s, ok := item[f.KeyAttr].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("dynamotest: missing string key " + f.KeyAttr)
	}
	return s.Value, nil
}

func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	k, err := f.key(in.Item)
	if err != nil {
		return nil, err
	}
	if cond := aws.ToString(in.ConditionExpression); cond != "" {
		if cond != "attribute_not_exists("+f.KeyAttr+")" {
			return nil, errors.New("dynamotest: unsupported condition " + cond)
		}
		if _, exists := f.Items[k]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	f.Items[k] = in.Item
	f.Puts++
	return &dynamodb.PutItemOutput{}, nil
}

func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	k, err := f.key(in.Key)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: f.Items[k]}, nil
}
