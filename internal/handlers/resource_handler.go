package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vantage/internal/repositories"

	"github.com/labstack/echo/v4"
)

// reserved query parameters handled by the generic list contract; everything
// else is passed to the repository's filter table.
var reservedParams = map[string]bool{
	"page":      true,
	"limit":     true,
	"sortField": true,
	"sortOrder": true,
}

// ResourceHandler proxies CRUD for one entity through its repository.
type ResourceHandler[T any] struct {
	repo *repositories.Repository[T]
}

func NewResourceHandler[T any](repo *repositories.Repository[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{repo: repo}
}

func parseFilter(ctx echo.Context) repositories.Filter {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	values := make(map[string]string)
	for key, vs := range ctx.QueryParams() {
		if !reservedParams[key] && len(vs) > 0 {
			values[key] = vs[0]
		}
	}

	return repositories.Filter{
		Page:      page,
		Limit:     limit,
		SortField: ctx.QueryParam("sortField"),
		SortOrder: ctx.QueryParam("sortOrder"),
		Values:    values,
	}
}

// List handles retrieval of one page of records with filtering and sorting
func (h *ResourceHandler[T]) List(ctx echo.Context) error {
	page, err := h.repo.List(ctx.Request().Context(), parseFilter(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, page)
}

// Get handles retrieval of a single record
func (h *ResourceHandler[T]) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	entity, err := h.repo.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

// bindPayload decodes the request body once into the raw payload that goes to
// the backend and a typed copy for validation. The raw map is what gets
// submitted: fields the caller never sent stay absent, where a bound struct
// would leak zero values for every backend-owned column.
func bindPayload[T any](c echo.Context) (map[string]interface{}, *T, error) {
	payload := make(map[string]interface{})
	if err := c.Bind(&payload); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}
	var entity T
	if err := json.Unmarshal(encoded, &entity); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}

	return payload, &entity, nil
}

// Create handles creation of new records
func (h *ResourceHandler[T]) Create(ctx echo.Context) error {
	payload, entity, err := bindPayload[T](ctx)
	if err != nil {
		return err
	}

	if err := ctx.Validate(entity); err != nil {
		return err
	}

	created, err := h.repo.Create(ctx.Request().Context(), payload)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// Update handles updating an existing record. Update bodies are partial, so
// required tags cannot apply to them; field validation of the changed values
// is the backend's job.
func (h *ResourceHandler[T]) Update(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	payload, _, err := bindPayload[T](ctx)
	if err != nil {
		return err
	}

	updated, err := h.repo.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// Delete handles deletion of a record
func (h *ResourceHandler[T]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	if err := h.repo.Delete(ctx.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RegisterRoutes registers CRUD routes for the handler
func (h *ResourceHandler[T]) RegisterRoutes(g *echo.Group, path string) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, h.Create)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
