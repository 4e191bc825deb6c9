// Package controller implements the generic list-and-form view model shared
// by every phonebook resource (contacts, companies, notices, users). One
// type-parameterized Controller replaces four near-identical screens: it owns
// the current page of records, the search term, and the create/edit form, and
// it reconciles exclusively against the server after each mutation and keeps
// no optimistic local state.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// DefaultPerPage is the fixed page size for paginated collections.
const DefaultPerPage = 10

var (
	ErrNoForm           = errors.New("no form is open")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordRequired = errors.New("password is required for new users")
)

// Query carries the list parameters for a paginated collection. For
// unpaginated collections the zero Query is sent and the server returns the
// entire collection.
type Query struct {
	Page    int
	PerPage int
	Search  string
}

// Endpoint abstracts the server-side collection for one resource type.
// Mutation payloads are JSON object bodies; the server interprets missing
// keys as "leave unchanged" on update.
type Endpoint[T any] interface {
	List(ctx context.Context, q Query) ([]T, *models.Pagination, error)
	Create(ctx context.Context, payload map[string]any) error
	Update(ctx context.Context, id int64, payload map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// Field describes one form field of a resource.
type Field struct {
	Key      string
	Label    string
	Required bool
	// Secret fields (passwords) are read without echo and never pre-filled
	// when editing an existing record.
	Secret bool
	// Multiline fields are read until an empty line.
	Multiline bool
	// Default is the initial value on the create form.
	Default string
}

// Descriptor defines everything resource-specific about a Controller.
type Descriptor[T any] struct {
	Singular string
	Plural   string

	// Paginated is true only for contacts; every other collection is
	// fetched whole.
	Paginated bool

	// HasActive enables the ToggleActive shortcut (notices and users).
	HasActive bool

	Fields []Field

	ID func(rec T) int64

	// FillForm maps a record to form values. Missing optional fields must
	// come back as the empty string, never be absent, so that an edit form
	// always round-trips a complete payload.
	FillForm func(rec T) map[string]string

	// BuildPayload validates form values and produces the JSON body for a
	// create (editing=false) or update (editing=true). A returned error
	// aborts the submit before any network request is made.
	BuildPayload func(values map[string]string, editing bool) (map[string]any, error)
}

// Confirm asks the user to approve an irreversible action. Declining and
// dismissing are deliberately indistinguishable: both abort with zero side
// effects.
type Confirm func(prompt string) bool

type form struct {
	editing bool
	id      int64
	values  map[string]string
}

// Controller owns the list/search/pagination state and the create-or-edit
// form for one resource type.
type Controller[T any] struct {
	desc Descriptor[T]
	ep   Endpoint[T]

	items      []T
	pagination models.Pagination
	page       int
	search     string
	loading    bool

	form *form
}

func New[T any](desc Descriptor[T], ep Endpoint[T]) *Controller[T] {
	return &Controller[T]{desc: desc, ep: ep, page: 1}
}

func (c *Controller[T]) Descriptor() Descriptor[T]     { return c.desc }
func (c *Controller[T]) Items() []T                    { return c.items }
func (c *Controller[T]) Pagination() models.Pagination { return c.pagination }
func (c *Controller[T]) Page() int                     { return c.page }
func (c *Controller[T]) SearchTerm() string            { return c.search }
func (c *Controller[T]) Loading() bool                 { return c.loading }

func (c *Controller[T]) query() Query {
	if !c.desc.Paginated {
		return Query{}
	}
	return Query{Page: c.page, PerPage: DefaultPerPage, Search: c.search}
}

// Refresh fetches the current page from the server. A failed fetch is logged
// and degrades to an empty list; it is never surfaced to the user, since an
// empty list is a safe, visible degradation.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.loading = true
	defer func() { c.loading = false }()

	items, pg, err := c.ep.List(ctx, c.query())
	if err != nil {
		log.Printf("Error fetching %s: %v", c.desc.Plural, err)
		c.items = nil
		c.pagination = models.Pagination{}
		return
	}

	c.items = items
	if pg != nil {
		c.pagination = *pg
		if pg.Page > 0 {
			c.page = pg.Page
		}
	}
}

// Search replaces the search term, resets pagination to the first page and
// re-fetches.
func (c *Controller[T]) Search(ctx context.Context, term string) {
	c.search = term
	c.page = 1
	c.Refresh(ctx)
}

func (c *Controller[T]) NextPage(ctx context.Context) {
	if !c.desc.Paginated || c.page >= c.pagination.Pages {
		return
	}
	c.page++
	c.Refresh(ctx)
}

func (c *Controller[T]) PrevPage(ctx context.Context) {
	if !c.desc.Paginated || c.page <= 1 {
		return
	}
	c.page--
	c.Refresh(ctx)
}

// OpenCreate initializes an empty create form with the descriptor defaults.
func (c *Controller[T]) OpenCreate() {
	values := make(map[string]string, len(c.desc.Fields))
	for _, f := range c.desc.Fields {
		values[f.Key] = f.Default
	}
	c.form = &form{values: values}
}

// OpenEdit initializes the form from an existing record. Every field is
// pre-filled, substituting the empty string for missing optional values;
// secret fields are always left blank.
func (c *Controller[T]) OpenEdit(rec T) {
	values := c.desc.FillForm(rec)
	for _, f := range c.desc.Fields {
		if f.Secret {
			values[f.Key] = ""
			continue
		}
		if _, ok := values[f.Key]; !ok {
			values[f.Key] = ""
		}
	}
	c.form = &form{editing: true, id: c.desc.ID(rec), values: values}
}

func (c *Controller[T]) FormOpen() bool { return c.form != nil }

// Editing reports whether the open form targets an existing record.
func (c *Controller[T]) Editing() bool { return c.form != nil && c.form.editing }

func (c *Controller[T]) Value(key string) string {
	if c.form == nil {
		return ""
	}
	return c.form.values[key]
}

func (c *Controller[T]) SetValue(key, value string) {
	if c.form == nil {
		return
	}
	c.form.values[key] = value
}

// Values returns a copy of the current form values.
func (c *Controller[T]) Values() map[string]string {
	if c.form == nil {
		return nil
	}
	values := make(map[string]string, len(c.form.values))
	for k, v := range c.form.values {
		values[k] = v
	}
	return values
}

func (c *Controller[T]) CloseForm() { c.form = nil }

// Submit validates the form, sends the create or update request and, on
// success, closes the form and re-fetches the list. On any failure the form
// stays open for re-submission and the error carries the message to surface.
func (c *Controller[T]) Submit(ctx context.Context) error {
	if c.form == nil {
		return ErrNoForm
	}

	payload, err := c.desc.BuildPayload(c.form.values, c.form.editing)
	if err != nil {
		return err
	}

	if c.form.editing {
		err = c.ep.Update(ctx, c.form.id, payload)
	} else {
		err = c.ep.Create(ctx, payload)
	}
	if err != nil {
		return err
	}

	c.form = nil
	c.Refresh(ctx)
	return nil
}

// Delete asks for confirmation, issues the delete and re-fetches. Without
// confirmation no request is made and the list is left unchanged.
func (c *Controller[T]) Delete(ctx context.Context, id int64, confirm Confirm) error {
	prompt := fmt.Sprintf("Are you sure you want to delete this %s?", c.desc.Singular)
	if confirm == nil || !confirm(prompt) {
		return nil
	}
	if err := c.ep.Delete(ctx, id); err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}

// ToggleActive flips is_active through a partial update, then re-fetches.
// It is a convenience shortcut over the general update path.
func (c *Controller[T]) ToggleActive(ctx context.Context, id int64, current bool) error {
	if !c.desc.HasActive {
		return fmt.Errorf("%s records have no active flag", c.desc.Singular)
	}
	if err := c.ep.Update(ctx, id, map[string]any{"is_active": !current}); err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}
