package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
	requestTimeout    = 3 * time.Second
)

// Document is the indexed form of an employee. It mirrors the HTTP
// employee object.
type Document struct {
	UUID     uuid.UUID `json:"uuid"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Birthday string    `json:"birthday"`
	Hobbies  []string  `json:"hobbies"`
}

// EmployeeIndex keeps employee documents in one Elasticsearch index.
type EmployeeIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewEmployeeIndex(es *elasticsearch.Client, index string) *EmployeeIndex {
	return &EmployeeIndex{ES: es, Index: index}
}

// Upsert indexes the employee carried by ev under its employee id.
func (x *EmployeeIndex) Upsert(ctx context.Context, ev entity.EmployeeEvent) error {
	doc := Document{
		UUID:     ev.UUID,
		Email:    ev.Email,
		FullName: ev.FullName,
		Birthday: ev.Birthday,
		Hobbies:  ev.Hobbies,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: ev.UUID.String(),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", ev.UUID, res.Status())
	}
	return nil
}

// Delete removes the document; a missing document is not an error.
func (x *EmployeeIndex) Delete(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id.String()}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over email, full name and hobbies.
func (x *EmployeeIndex) Search(ctx context.Context, q string, size int) ([]Document, error) {
	if size <= 0 {
		size = defaultSearchSize
	} else if size > maxSearchSize {
		size = maxSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "fullName^2", "hobbies"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		// index not created yet: nothing has been projected
		if res.StatusCode == http.StatusNotFound {
			return []Document{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
