package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/milangdev/moviefi-test-task/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type MovieRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type movieItem struct {
	ID             string `dynamodbav:"id"`
	Title          string `dynamodbav:"title"`
	PublishingYear int    `dynamodbav:"publishing_year"`
	Poster         string `dynamodbav:"poster"`
	CreatedAt      string `dynamodbav:"created_at"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// List pages through the catalog newest first. DynamoDB has no offset
// queries, so the whole table is scanned and sliced in memory; the catalog
// stays small enough for this to be the simpler trade-off.
func (r *MovieRepository) List(ctx context.Context, offset, limit int) ([]movie.Movie, int64, error) {
	if err := validateTable(r.table); err != nil {
		return nil, 0, err
	}

	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})

	total := int64(len(items))
	if offset >= len(items) {
		return []movie.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	movies := make([]movie.Movie, 0, end-offset)
	for _, item := range items[offset:end] {
		movies = append(movies, toDomainMovie(item))
	}
	return movies, total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}

	return toDomainMovie(item), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	item := movieItem{
		ID:             uuid.NewString(),
		Title:          m.Title,
		PublishingYear: m.PublishingYear,
		Poster:         m.Poster,
		CreatedAt:      r.now().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return toDomainMovie(item), nil
}

func (r *MovieRepository) Update(ctx context.Context, id string, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
		UpdateExpression:    aws.String("SET title = :title, publishing_year = :year, poster = :poster"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":  &types.AttributeValueMemberS{Value: m.Title},
			":year":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", m.PublishingYear)},
			":poster": &types.AttributeValueMemberS{Value: m.Poster},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, fmt.Errorf("dynamodb: update movie: %w", err)
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}

	return toDomainMovie(item), nil
}

func toDomainMovie(item movieItem) movie.Movie {
	return movie.Movie{
		ID:             item.ID,
		Title:          item.Title,
		PublishingYear: item.PublishingYear,
		Poster:         item.Poster,
	}
}
