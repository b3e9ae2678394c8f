package order

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pickles-ecom/internal/cart"
)

// DynamoAPI is the subset of *dynamodb.Client the repository uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Decimals are stored as strings to avoid rounding.
type orderItem struct {
	OrderID   string     `dynamodbav:"order_id"`
	Name      string     `dynamodbav:"name"`
	Email     string     `dynamodbav:"email"`
	Address   string     `dynamodbav:"address"`
	OrderTime string     `dynamodbav:"order_time"`
	Items     []lineItem `dynamodbav:"items"`
	Total     string     `dynamodbav:"total"`
}

type lineItem struct {
	Product  string `dynamodbav:"product"`
	Price    string `dynamodbav:"price"`
	Quantity int    `dynamodbav:"quantity"`
}

// DynamoRepo stores orders in a table whose partition key is "order_id".
type DynamoRepo struct {
	client    DynamoAPI
	tableName string
}

func NewDynamoRepo(client DynamoAPI, tableName string) *DynamoRepo {
	return &DynamoRepo{client: client, tableName: tableName}
}

func (r *DynamoRepo) Save(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec := orderItem{
		OrderID:   o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Address:   o.Address,
		OrderTime: o.CreatedAt.Format(time.RFC3339Nano),
		Items:     make([]lineItem, 0, len(o.Items)),
		Total:     o.Total.String(),
	}
	for _, it := range o.Items {
		rec.Items = append(rec.Items, lineItem{Product: it.Product, Price: it.UnitPrice.String(), Quantity: it.Quantity})
	}

	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

// Get reads an order back. Checkout never needs this; it exists for
// support tooling and tests.
func (r *DynamoRepo) Get(ctx context.Context, id string) (*Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var rec orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	o := &Order{ID: rec.OrderID, Name: rec.Name, Email: rec.Email, Address: rec.Address}
	if o.CreatedAt, err = time.Parse(time.RFC3339Nano, rec.OrderTime); err != nil {
		return nil, fmt.Errorf("order %s: bad order_time: %w", id, err)
	}
	if o.Total, err = decimal.NewFromString(rec.Total); err != nil {
		return nil, fmt.Errorf("order %s: bad total: %w", id, err)
	}
	for _, li := range rec.Items {
		price, err := decimal.NewFromString(li.Price)
		if err != nil {
			return nil, fmt.Errorf("order %s: bad price: %w", id, err)
		}
		o.Items = append(o.Items, cart.Line{Product: li.Product, UnitPrice: price, Quantity: li.Quantity})
	}
	return o, nil
}
