package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"gridlens/internal/model"
	"gridlens/internal/util/logx"
)

// REST fetches pages from a backend implementing the list contract:
//
//	GET {base}/rows?page=&pageSize=&sortKey=&sortDir=&q=&field=&expr=&f.<col>=v...
//	  -> {"rows": [...], "page": {"page","pageSize","totalPages","totalRecords"}}
//	GET {base}/rows?all=true&...   -> {"rows": [...]}
//	GET {base}/values?col=a&col=b  -> {"values": {"a": [...], "b": [...]}}
//
// Filtering, sorting and slicing are the server's job here; this client
// only encodes the query and decodes the page.
type REST struct {
	Base   string
	Client *http.Client
}

func NewREST(base string) *REST {
	return &REST{Base: base, Client: &http.Client{Timeout: 30 * time.Second}}
}

type pagePayload struct {
	Rows []model.Row    `json:"rows"`
	Page model.PageInfo `json:"page"`
}

type valuesPayload struct {
	Values map[string][]string `json:"values"`
}

func (r *REST) Fetch(ctx context.Context, q Query) (Result, error) {
	var payload pagePayload
	if err := r.get(ctx, "/rows", encodeQuery(q, false), q.RequestID, &payload); err != nil {
		return Result{}, err
	}
	return Result{Rows: payload.Rows, Page: payload.Page}, nil
}

func (r *REST) All(ctx context.Context, q Query) ([]model.Row, error) {
	var payload pagePayload
	if err := r.get(ctx, "/rows", encodeQuery(q, true), q.RequestID, &payload); err != nil {
		return nil, err
	}
	return payload.Rows, nil
}

func (r *REST) UniqueValues(ctx context.Context, columns []model.Column) (map[string][]string, error) {
	params := url.Values{}
	for _, c := range columns {
		params.Add("col", c.Key)
	}
	var payload valuesPayload
	if err := r.get(ctx, "/values", params, "", &payload); err != nil {
		return nil, err
	}
	return payload.Values, nil
}

func (r *REST) get(ctx context.Context, path string, params url.Values, requestID string, out any) error {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	u := r.Base + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	logx.Debugf("source: GET %s id=%s", u, requestID)
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("source: %s: status %d: %s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("source: decode: %w", err)
	}
	return nil
}

func encodeQuery(q Query, all bool) url.Values {
	params := url.Values{}
	if all {
		params.Set("all", "true")
	} else {
		params.Set("page", fmt.Sprint(q.Page))
		params.Set("pageSize", fmt.Sprint(q.PageSize))
	}
	if q.Sort.Active() {
		params.Set("sortKey", q.Sort.Key)
		params.Set("sortDir", string(q.Sort.Dir))
	}
	if q.Criteria.Query != "" {
		query := q.Criteria.Query
		if q.Criteria.UseRegex {
			query = "/" + query + "/"
		}
		params.Set("q", query)
		if q.Criteria.Field != "" {
			params.Set("field", q.Criteria.Field)
		}
	}
	if q.Criteria.Expr != "" {
		params.Set("expr", q.Criteria.Expr)
	}
	for col, vals := range q.Filters {
		for _, v := range vals {
			params.Add("f."+col, v)
		}
	}
	return params
}
