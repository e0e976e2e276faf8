package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/yoga_studio/internal/models"
)

const sessionMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "date":        {"type": "date"},
      "teacher_id":  {"type": "long"}
    }
  }
}`

type sessionDoc struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TeacherID   *uint     `json:"teacher_id,omitempty"`
}

// SessionIndex keeps a searchable copy of sessions in one index. Documents
// are keyed by session id.
type SessionIndex struct {
	Client *elasticsearch.Client
	Index  string
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (s *SessionIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.Client.Indices.Exists([]string{s.Index}, s.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = s.Client.Indices.Create(s.Index,
		s.Client.Indices.Create.WithContext(ctx),
		s.Client.Indices.Create.WithBody(bytes.NewReader([]byte(sessionMapping))),
	)
	if err != nil {
		return fmt.Errorf("es: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (s *SessionIndex) IndexSession(ctx context.Context, session *models.Session) error {
	doc := sessionDoc{
		ID:          session.ID,
		Name:        session.Name,
		Description: session.Description,
		Date:        session.Date,
		TeacherID:   session.TeacherID,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("es: encode session: %w", err)
	}

	res, err := s.Client.Index(s.Index, &buf,
		s.Client.Index.WithContext(ctx),
		s.Client.Index.WithDocumentID(strconv.FormatUint(uint64(session.ID), 10)),
		s.Client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("es: index session: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index session", res)
	}
	return nil
}

// RemoveSession deletes the document for id. A missing document is fine.
func (s *SessionIndex) RemoveSession(ctx context.Context, id uint) error {
	res, err := s.Client.Delete(s.Index, strconv.FormatUint(uint64(id), 10),
		s.Client.Delete.WithContext(ctx),
		s.Client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("es: delete session: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete session", res)
	}
	return nil
}

// SearchIDs runs a fuzzy match over name and description and returns the
// total hit count with the ids of one page, best match first. An empty query
// matches everything by date.
func (s *SessionIndex) SearchIDs(ctx context.Context, q string, offset, limit int) (int64, []uint, error) {
	body := map[string]any{
		"from": offset,
		"size": limit,
	}
	if q == "" {
		body["query"] = map[string]any{"match_all": map[string]any{}}
		body["sort"] = []any{map[string]any{"date": "asc"}}
	} else {
		body["query"] = map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
		s.Client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode search: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("es: %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
