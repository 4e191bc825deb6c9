package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/phonebook/internal/client/controller"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

// Resource is the generic endpoint for one collection under /api/<name>.
// It satisfies controller.Endpoint[T]; the list response is decoded from the
// {"<key>": [...], "pagination": {...}} shape every collection shares.
type Resource[T any] struct {
	client *Client
	path   string
	key    string
}

func (r Resource[T]) List(ctx context.Context, q controller.Query) ([]T, *models.Pagination, error) {
	var query url.Values
	if q.Page > 0 {
		query = url.Values{}
		query.Set("page", strconv.Itoa(q.Page))
		query.Set("per_page", strconv.Itoa(q.PerPage))
		query.Set("search", q.Search)
	}

	body, status, err := r.client.do(ctx, http.MethodGet, r.path, query, nil)
	if err != nil {
		return nil, nil, err
	}
	if !ok(status) {
		return nil, nil, fail(status, body)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(body, &sections); err != nil {
		return nil, nil, fmt.Errorf("list decoding error: %w", err)
	}

	var items []T
	if raw, found := sections[r.key]; found {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, fmt.Errorf("list decoding error: %w", err)
		}
	}

	var pagination *models.Pagination
	if raw, found := sections["pagination"]; found {
		pagination = &models.Pagination{}
		if err := json.Unmarshal(raw, pagination); err != nil {
			return nil, nil, fmt.Errorf("pagination decoding error: %w", err)
		}
	}

	return items, pagination, nil
}

func (r Resource[T]) Create(ctx context.Context, payload map[string]any) error {
	return r.mutate(ctx, http.MethodPost, r.path, payload)
}

func (r Resource[T]) Update(ctx context.Context, id int64, payload map[string]any) error {
	return r.mutate(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), payload)
}

func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.mutate(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil)
}

func (r Resource[T]) mutate(ctx context.Context, method, path string, payload map[string]any) error {
	var reqBody any
	if payload != nil {
		reqBody = payload
	}
	body, status, err := r.client.do(ctx, method, path, nil, reqBody)
	if err != nil {
		return err
	}

	var env envelope
	if !ok(status) || json.Unmarshal(body, &env) != nil || !env.Success {
		return fail(status, body)
	}
	return nil
}

func (c *Client) Contacts() Resource[models.Contact] {
	return Resource[models.Contact]{client: c, path: "/api/contacts", key: "contacts"}
}

func (c *Client) Companies() Resource[models.Company] {
	return Resource[models.Company]{client: c, path: "/api/companies", key: "companies"}
}

func (c *Client) Notices() Resource[models.Notice] {
	return Resource[models.Notice]{client: c, path: "/api/notices", key: "notices"}
}

func (c *Client) Users() Resource[models.User] {
	return Resource[models.User]{client: c, path: "/api/users", key: "users"}
}
