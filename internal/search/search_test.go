package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_store/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_score":1.5,"_source":{"id":"abc","name":"Air Runner","brand":"Nike","price":120}}]}}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}
}

func newIndexer(t *testing.T) (*ESIndexer, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewESIndexer(client, "products"), fake
}

func TestESIndexer_IndexAndDelete(t *testing.T) {
	x, fake := newIndexer(t)
	id := uuid.New()

	require.NoError(t, x.IndexProduct(context.Background(), models.Product{ID: id, Name: "Air Runner", Brand: "Nike"}))
	require.NoError(t, x.DeleteProduct(context.Background(), id.String()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.requests, "PUT /products/_doc/"+id.String())
	assert.Contains(t, fake.requests, "DELETE /products/_doc/"+id.String())

	var doc map[string]any
	for i, r := range fake.requests {
		if strings.HasPrefix(r, "PUT") {
			require.NoError(t, json.Unmarshal([]byte(fake.bodies[i]), &doc))
		}
	}
	assert.Equal(t, "Air Runner", doc["name"])
}

func TestESIndexer_Search(t *testing.T) {
	x, fake := newIndexer(t)

	res, err := x.Search(context.Background(), "runer", 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Air Runner", res.Items[0].Name)
	assert.Equal(t, 1.5, res.Items[0].Score)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.bodies[len(fake.bodies)-1]), &q))
	assert.EqualValues(t, 5, q["from"])
	assert.EqualValues(t, 5, q["size"])
}

func TestNop(t *testing.T) {
	var x Indexer = Nop{}
	assert.NoError(t, x.IndexProduct(context.Background(), models.Product{}))
	_, err := x.Search(context.Background(), "q", 1, 10)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestCalculate(t *testing.T) {
	off, lim := Calculate(0, 0)
	assert.Equal(t, 0, off)
	assert.Equal(t, DefaultPageSize, lim)

	off, lim = Calculate(3, 20)
	assert.Equal(t, 40, off)
	assert.Equal(t, 20, lim)

	_, lim = Calculate(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, lim)
}
