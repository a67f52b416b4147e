package dataset

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "sales")
	assert.True(t, errors.Is(err, errors.ErrCodeDatasetNotFound), "Get missing: %v", err)

	ds := &Dataset{Name: "sales", Points: []chart.Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 2}}}
	require.NoError(t, s.Put(ctx, ds))
	require.NoError(t, s.Put(ctx, &Dataset{Name: "costs"}))

	got, err := s.Get(ctx, "sales")
	require.NoError(t, err)
	assert.Equal(t, ds.Points, got.Points)
	assert.False(t, got.UpdatedAt.IsZero())

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"costs", "sales"}, names)

	require.NoError(t, s.Delete(ctx, "costs"))
	err = s.Delete(ctx, "costs")
	assert.True(t, errors.Is(err, errors.ErrCodeDatasetNotFound))

	err = s.Put(ctx, &Dataset{Name: "../etc"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	testStore(t, s)

	// Returned datasets are copies.
	got, err := s.Get(context.Background(), "sales")
	require.NoError(t, err)
	got.Points[0].Value = 99
	again, _ := s.Get(context.Background(), "sales")
	assert.Equal(t, 1.0, again.Points[0].Value)
	assert.NoError(t, s.Close(context.Background()))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("BARCHART_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BARCHART_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "barchart_test", "datasets_"+time.Now().Format("150405"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	testStore(t, s)
}

func TestNewMongoStoreInvalidURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://localhost", "", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
