package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"vantage/internal/backend"
	"vantage/internal/events"
	"vantage/internal/models"
	"vantage/internal/utils/logger"
)

// AllMode controls what the sentinel value "all" does to a filter parameter.
type AllMode int

const (
	// AllEmpty emits the parameter with an empty value (clientId=).
	AllEmpty AllMode = iota
	// AllOmit leaves the parameter out of the query entirely.
	AllOmit
)

// FilterRule maps one UI filter key to a backend query parameter. The rule
// table is the only thing that differs between entity repositories.
type FilterRule struct {
	Key    string // filter key as the UI sends it
	Param  string // query parameter name; defaults to Key
	OnAll  AllMode
	Encode func(value string) string // optional value translation
}

func (r FilterRule) param() string {
	if r.Param != "" {
		return r.Param
	}
	return r.Key
}

// Filter carries pagination, sorting and the entity-specific filter values
// for a list call. Absent or blank values are never sent.
type Filter struct {
	Page      int
	Limit     int
	SortField string
	SortOrder string
	Values    map[string]string
}

// Repository is the one paginated-CRUD repository every entity shares. All
// operations are thin pass-throughs to the backend client: no retries, no
// caching, no optimistic updates, no conflict detection.
type Repository[T any] struct {
	api      *backend.Client
	endpoint string
	resource string
	rules    []FilterRule
	log      *logger.Logger
}

func New[T any](api *backend.Client, endpoint, resource string, rules []FilterRule) *Repository[T] {
	return &Repository[T]{
		api:      api,
		endpoint: endpoint,
		resource: resource,
		rules:    rules,
		log:      logger.New(resource + "_repository"),
	}
}

// Query renders the filter into backend query parameters. Exposed so tests
// can pin the exact wire shape.
func (r *Repository[T]) Query(f Filter) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.SortField != "" {
		q.Set("sortField", f.SortField)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}

	for _, rule := range r.rules {
		value, ok := f.Values[rule.Key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if value == "all" {
			if rule.OnAll == AllOmit {
				continue
			}
			q.Set(rule.param(), "")
			continue
		}
		if rule.Encode != nil {
			value = rule.Encode(value)
		}
		q.Set(rule.param(), value)
	}
	return q
}

// List fetches one page of records.
func (r *Repository[T]) List(ctx context.Context, f Filter) (*models.Page[T], error) {
	return backend.Request[models.Page[T]](ctx, r.api, http.MethodGet, r.endpoint, &backend.RequestOptions{
		Query: r.Query(f),
	})
}

// GetByID fetches a single record. A missing record satisfies
// errors.Is(err, backend.ErrNotFound).
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return backend.Request[T](ctx, r.api, http.MethodGet, r.endpoint+"/"+url.PathEscape(id), nil)
}

// Create submits a new record. String fields are trimmed and fields that are
// empty after trimming are dropped from the payload, so the backend sees them
// as unset rather than as empty strings.
func (r *Repository[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	body, err := sanitizePayload(payload)
	if err != nil {
		return nil, r.log.Error("Failed to prepare create payload", err)
	}
	created, err := backend.Request[T](ctx, r.api, http.MethodPost, r.endpoint, &backend.RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	r.emit(ctx, "created", recordID(created), created)
	return created, nil
}

// Update submits a partial record under the same payload rules as Create.
func (r *Repository[T]) Update(ctx context.Context, id string, payload interface{}) (*T, error) {
	body, err := sanitizePayload(payload)
	if err != nil {
		return nil, r.log.Error("Failed to prepare update payload", err)
	}
	updated, err := backend.Request[T](ctx, r.api, http.MethodPut, r.endpoint+"/"+url.PathEscape(id), &backend.RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	r.emit(ctx, "updated", id, updated)
	return updated, nil
}

// Delete issues the delete call. Whether the backend soft- or hard-deletes is
// its decision alone.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.api.Do(ctx, http.MethodDelete, r.endpoint+"/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	r.emit(ctx, "deleted", id, nil)
	return nil
}

// Resource returns the event-name prefix for this repository.
func (r *Repository[T]) Resource() string {
	return r.resource
}

func (r *Repository[T]) emit(ctx context.Context, action, id string, data interface{}) {
	actor, _ := backend.ActorFromContext(ctx)
	events.Emit(r.resource+"."+action, events.Change{
		Resource:   r.resource,
		Action:     action,
		ResourceID: id,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Data:       data,
	})
}

// recordID reads the identity off any entity embedding models.Record.
func recordID(entity interface{}) string {
	if ider, ok := entity.(interface{ RecordID() string }); ok {
		return ider.RecordID()
	}
	return ""
}

// backendOwned are the record columns the backend maintains itself. They are
// stripped from every submitted payload; otherwise a typed payload would send
// their zero values (createdAt "0001-01-01...", isDeleted false) and clobber
// backend-owned state.
var backendOwned = map[string]bool{
	"id":        true,
	"isDeleted": true,
	"createdAt": true,
	"updatedAt": true,
	"createdBy": true,
	"updatedBy": true,
	"deletedAt": true,
}

// sanitizePayload flattens any payload into a JSON object, strips the
// backend-owned record columns, trims string fields and drops the ones that
// end up empty, along with nulls.
func sanitizePayload(payload interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var body map[string]interface{}
	if err := json.Unmarshal(encoded, &body); err != nil {
		return nil, err
	}
	for key, value := range body {
		if backendOwned[key] {
			delete(body, key)
			continue
		}
		switch v := value.(type) {
		case nil:
			delete(body, key)
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				delete(body, key)
			} else {
				body[key] = trimmed
			}
		}
	}
	return body, nil
}
