package dynamo_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"visitjo/internal/domain"
	"visitjo/internal/storage/dynamo"
)

// fakeDynamo keeps items per table, keyed by the "id" string attribute.
type fakeDynamo struct {
	tables map[string]map[string]map[string]types.AttributeValue
	scans  []*dynamodb.ScanInput
}

func newFake() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func idOf(item map[string]types.AttributeValue) string {
	if s, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	t := aws.ToString(in.TableName)
	if f.tables[t] == nil {
		f.tables[t] = map[string]map[string]types.AttributeValue{}
	}
	f.tables[t][idOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.tables[aws.ToString(in.TableName)][idOf(in.Key)]}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	t := f.tables[aws.ToString(in.TableName)]
	ids := make([]string, 0, len(t))
	after := idOf(in.ExclusiveStartKey)
	for id := range t {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := &dynamodb.ScanOutput{}
	for _, id := range ids {
		if int32(len(out.Items)) == aws.ToInt32(in.Limit) {
			last := out.Items[len(out.Items)-1]
			out.LastEvaluatedKey = map[string]types.AttributeValue{"id": last["id"]}
			break
		}
		out.Items = append(out.Items, t[id])
	}
	return out, nil
}

func TestStore_ItemMirrorsRecordJSON(t *testing.T) {
	fake := newFake()
	s := dynamo.New(fake)
	ctx := context.Background()

	in := domain.Hotel{
		ID: "g1", Name: "Dead Sea Spa", Destination: "Dead Sea", Price: 150, Rating: 4.7, Reviews: 812,
		Images: []string{"https://x/y.jpg"}, Amenities: []string{"WiFi"}, CheckIn: "15:00",
	}
	if err := s.PutHotel(ctx, "hotels", in); err != nil {
		t.Fatal(err)
	}

	item := fake.tables["hotels"]["g1"]
	if n, ok := item["reviews"].(*types.AttributeValueMemberN); !ok || n.Value != "812" {
		t.Fatalf("reviews attribute = %#v", item["reviews"])
	}
	if _, ok := item["checkIn"].(*types.AttributeValueMemberS); !ok {
		t.Fatalf("expected camelCase attribute names, got %v", item)
	}

	out, err := s.GetHotel(ctx, "hotels", "g1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != in.Name || out.Price != 150 || out.Rating != 4.7 || out.Reviews != 812 || out.Images[0] != "https://x/y.jpg" {
		t.Fatalf("unexpected record: %+v", out)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := dynamo.New(newFake())
	if _, err := s.GetHotel(context.Background(), "hotels", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ScanUsesCursorAsExclusiveStartKey(t *testing.T) {
	fake := newFake()
	s := dynamo.New(fake)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_ = s.PutHotel(ctx, "hotels", domain.Hotel{ID: id})
	}

	p1, err := s.ScanHotels(ctx, "hotels", 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(p1.Items) != 2 || p1.NextCursor == nil {
		t.Fatalf("page 1: %+v", p1)
	}
	if fake.scans[0].ExclusiveStartKey != nil || aws.ToInt32(fake.scans[0].Limit) != 2 {
		t.Fatalf("unexpected first scan input: %+v", fake.scans[0])
	}

	p2, err := s.ScanHotels(ctx, "hotels", 2, *p1.NextCursor)
	if err != nil {
		t.Fatal(err)
	}
	if idOf(fake.scans[1].ExclusiveStartKey) != "b" {
		t.Fatalf("cursor should resume after b: %+v", fake.scans[1].ExclusiveStartKey)
	}
	if len(p2.Items) != 1 || p2.Items[0].ID != "c" || p2.NextCursor != nil {
		t.Fatalf("page 2: %+v", p2)
	}
}

func TestStore_InvalidTable(t *testing.T) {
	s := dynamo.New(newFake())
	if err := s.PutHotel(context.Background(), "", domain.Hotel{ID: "x"}); !errors.Is(err, domain.ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}
