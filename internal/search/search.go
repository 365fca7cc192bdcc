package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/transport"
)

var ErrDisabled = errors.New("search: index not configured")

// Indexer keeps a full-text copy of the catalog.
type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Search(ctx context.Context, query string, page, size int) (*transport.SearchResponse, error)
}

type document struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Gender      string   `json:"gender"`
	Category    []string `json:"category"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
}

type ESIndexer struct {
	es    *elasticsearch.Client
	index string
}

func NewESIndexer(es *elasticsearch.Client, index string) *ESIndexer {
	return &ESIndexer{es: es, index: index}
}

func (x *ESIndexer) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(document{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Gender:      p.Gender,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
	}); err != nil {
		return fmt.Errorf("search: encode product: %w", err)
	}

	res, err := x.es.Index(x.index, &buf,
		x.es.Index.WithDocumentID(p.ID.String()),
		x.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index product", res.Status(), res.Body)
	}
	return nil
}

func (x *ESIndexer) DeleteProduct(ctx context.Context, id string) error {
	res, err := x.es.Delete(x.index, id, x.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete product", res.Status(), res.Body)
	}
	return nil
}

func (x *ESIndexer) Search(ctx context.Context, query string, page, size int) (*transport.SearchResponse, error) {
	from, limit := Calculate(page, size)
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "brand"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("query", res.Status(), res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64  `json:"_score"`
				Source document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	out := &transport.SearchResponse{
		Total: r.Hits.Total.Value,
		Page:  from/limit + 1,
		Size:  limit,
		Items: make([]transport.SearchHit, 0, len(r.Hits.Hits)),
	}
	for _, h := range r.Hits.Hits {
		out.Items = append(out.Items, transport.SearchHit{
			ID:    h.Source.ID,
			Name:  h.Source.Name,
			Brand: h.Source.Brand,
			Price: h.Source.Price,
			Image: h.Source.Image,
			Score: h.Score,
		})
	}
	return out, nil
}

func responseError(op, status string, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 512))
	return fmt.Errorf("search: %s: %s: %s", op, status, bytes.TrimSpace(b))
}

// Nop is used when no Elasticsearch URL is configured.
type Nop struct{}

func (Nop) IndexProduct(context.Context, models.Product) error { return nil }
func (Nop) DeleteProduct(context.Context, string) error        { return nil }
func (Nop) Search(context.Context, string, int, int) (*transport.SearchResponse, error) {
	return nil, ErrDisabled
}
