package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const eventsNS = "devevent.events"

// staticSource hands out an already connected database.
type staticSource struct {
	db  *mongo.Database
	err error
}

func (s staticSource) Get(ctx context.Context) (*mongo.Database, error) {
	return s.db, s.err
}

var fixedTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleEvent(id, slug string) *domain.Event {
	return &domain.Event{
		ID:          id,
		Title:       "React Summit",
		Slug:        slug,
		Description: "The biggest React conference",
		Overview:    "Two days of talks",
		Image:       "https://cdn.example.com/events/react.png",
		Venue:       "RAI",
		Location:    "Amsterdam, NL",
		Date:        "2025-06-13",
		Time:        "09:00",
		Mode:        domain.ModeOffline,
		Audience:    "Frontend developers",
		Organizer:   "GitNation",
		Agenda:      []string{"Keynote", "Workshops"},
		Tags:        []string{"react", "frontend"},
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

func toBSON(t *testing.T, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestEventRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewEventRepository(staticSource{db: mt.DB})
		require.NoError(mt, repo.Create(context.Background(), sampleEvent("ev-1", "react-summit")))
	})

	mt.Run("duplicate slug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: devevent.events index: slug_unique",
		}))
		repo := NewEventRepository(staticSource{db: mt.DB})
		err := repo.Create(context.Background(), sampleEvent("ev-2", "react-summit"))
		require.ErrorIs(mt, err, domain.ErrDuplicateSlug)
	})

	mt.Run("connection unavailable", func(mt *mtest.T) {
		repo := NewEventRepository(staticSource{err: errors.New("server selection timeout")})
		err := repo.Create(context.Background(), sampleEvent("ev-3", "react-summit"))
		require.Error(mt, err)
	})
}

func TestEventRepository_GetBySlug(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		want := sampleEvent("ev-1", "react-summit")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			toBSON(mt.T, newEventDocument(want))))

		got, err := NewEventRepository(staticSource{db: mt.DB}).GetBySlug(context.Background(), "react-summit")
		require.NoError(mt, err)
		assert.Equal(mt, want.ID, got.ID)
		assert.Equal(mt, want.Slug, got.Slug)
		assert.Equal(mt, want.Mode, got.Mode)
		assert.Equal(mt, want.Tags, got.Tags)
		assert.True(mt, want.CreatedAt.Equal(got.CreatedAt))
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))

		_, err := NewEventRepository(staticSource{db: mt.DB}).GetBySlug(context.Background(), "missing")
		require.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		want := sampleEvent("ev-9", "gophercon")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			toBSON(mt.T, newEventDocument(want))))

		got, err := NewEventRepository(staticSource{db: mt.DB}).GetByID(context.Background(), "ev-9")
		require.NoError(mt, err)
		assert.Equal(mt, "gophercon", got.Slug)
	})
}

func TestEventRepository_ListAndCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list page", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			toBSON(mt.T, newEventDocument(sampleEvent("ev-2", "vue-summit"))),
			toBSON(mt.T, newEventDocument(sampleEvent("ev-1", "react-summit"))),
		))

		got, err := NewEventRepository(staticSource{db: mt.DB}).List(context.Background(), domain.PaginationParams{Page: 1, Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "vue-summit", got[0].Slug)
		assert.Equal(mt, "react-summit", got[1].Slug)
	})

	mt.Run("empty page", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))

		got, err := NewEventRepository(staticSource{db: mt.DB}).List(context.Background(), domain.PaginationParams{Page: 4, Limit: 10})
		require.NoError(mt, err)
		require.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(25)}}))

		n, err := NewEventRepository(staticSource{db: mt.DB}).Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, 25, n)
	})
}

func TestEventRepository_ListSimilar(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("shared tags", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			toBSON(mt.T, newEventDocument(sampleEvent("ev-3", "react-conf")))))

		got, err := NewEventRepository(staticSource{db: mt.DB}).ListSimilar(context.Background(), "react-summit", []string{"react"}, 3)
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "react-conf", got[0].Slug)
	})
}
