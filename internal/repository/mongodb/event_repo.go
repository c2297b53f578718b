package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devevent/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description"`
	Overview    string    `bson:"overview"`
	Image       string    `bson:"image"`
	Venue       string    `bson:"venue"`
	Location    string    `bson:"location"`
	Date        string    `bson:"date"`
	Time        string    `bson:"time"`
	Mode        string    `bson:"mode"`
	Audience    string    `bson:"audience"`
	Organizer   string    `bson:"organizer"`
	Agenda      []string  `bson:"agenda"`
	Tags        []string  `bson:"tags"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newEventDocument(e *domain.Event) eventDocument {
	return eventDocument{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Audience:    e.Audience,
		Organizer:   e.Organizer,
		Agenda:      e.Agenda,
		Tags:        e.Tags,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d eventDocument) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID,
		Title:       d.Title,
		Slug:        d.Slug,
		Description: d.Description,
		Overview:    d.Overview,
		Image:       d.Image,
		Venue:       d.Venue,
		Location:    d.Location,
		Date:        d.Date,
		Time:        d.Time,
		Mode:        domain.EventMode(d.Mode),
		Audience:    d.Audience,
		Organizer:   d.Organizer,
		Agenda:      d.Agenda,
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type eventRepository struct {
	src DatabaseSource
}

// NewEventRepository returns a domain.EventRepository backed by the events collection.
func NewEventRepository(src DatabaseSource) domain.EventRepository {
	return &eventRepository{src: src}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	col, err := collection(ctx, r.src, eventsCollection)
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, newEventDocument(e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("insert event: %w", mapError(err))
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: slug}})
}

func (r *eventRepository) findOne(ctx context.Context, filter bson.D) (*domain.Event, error) {
	col, err := collection(ctx, r.src, eventsCollection)
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	col, err := collection(ctx, r.src, eventsCollection)
	if err != nil {
		return 0, err
	}
	n, err := col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}

func (r *eventRepository) ListSimilar(ctx context.Context, excludeSlug string, tags []string, limit int) ([]*domain.Event, error) {
	filter := bson.D{
		{Key: "slug", Value: bson.D{{Key: "$ne", Value: excludeSlug}}},
		{Key: "tags", Value: bson.D{{Key: "$in", Value: tags}}},
	}
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *eventRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*domain.Event, error) {
	col, err := collection(ctx, r.src, eventsCollection)
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cur.Close(ctx)

	events := make([]*domain.Event, 0)
	for cur.Next(ctx) {
		var doc eventDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		events = append(events, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, mapError(err)
	}
	return events, nil
}
