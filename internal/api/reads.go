package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) Result[Health] {
	return read(ctx, c, &url.URL{Path: "/health"}, fallbackHealth, decodeJSON[Health])
}

// SystemInfo retrieves version, uptime and host summaries.
func (c *Client) SystemInfo(ctx context.Context) Result[SystemInfo] {
	return read(ctx, c, &url.URL{Path: "/system/info"}, fallbackSystemInfo, decodeJSON[SystemInfo])
}

// DatabaseTables lists tables with row counts and sizes.
func (c *Client) DatabaseTables(ctx context.Context) Result[[]Table] {
	return read(ctx, c, &url.URL{Path: "/system/database/tables"}, FallbackTables, func(raw []byte) ([]Table, error) {
		page, err := decodePage[Table](raw, "tables", ListRequest{Limit: MaxPageSize * 10})
		return page.Items, err
	})
}

// ResourceUsage retrieves CPU, memory, disk and network gauges.
func (c *Client) ResourceUsage(ctx context.Context) Result[Resources] {
	return read(ctx, c, &url.URL{Path: "/system/resources"}, fallbackResources, func(raw []byte) (Resources, error) {
		res, err := decodeJSON[Resources](raw)
		if err == nil && len(res.CPU.LoadAverage) == 0 {
			res.CPU.LoadAverage = []float64{0, 0, 0}
		}
		return res, err
	})
}

// APIEndpoints retrieves per-route health.
func (c *Client) APIEndpoints(ctx context.Context) Result[[]Endpoint] {
	return read(ctx, c, &url.URL{Path: "/system/api/endpoints"}, c.FallbackEndpoints, func(raw []byte) ([]Endpoint, error) {
		page, err := decodePage[Endpoint](raw, "endpoints", ListRequest{Limit: MaxPageSize * 10})
		return page.Items, err
	})
}

// RecentActivities lists recent admin activity using limit/offset paging.
func (c *Client) RecentActivities(ctx context.Context, req ListRequest) Result[Page[Activity]] {
	fallback := emptyPage[Activity](req)
	if err := req.Validate(); err != nil {
		return Result[Page[Activity]]{Outcome: Failure, Value: fallback(), Err: err}
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(req.Limit))
	values.Set("offset", strconv.Itoa(req.Offset))
	rel := &url.URL{Path: "/system/activities", RawQuery: values.Encode()}
	return read(ctx, c, rel, fallback, func(raw []byte) (Page[Activity], error) {
		return decodePage[Activity](raw, "activities", req)
	})
}

// Recipes lists recipes matching req.
func (c *Client) Recipes(ctx context.Context, req ListRequest) Result[Page[Recipe]] {
	fallback := emptyPage[Recipe](req)
	if err := req.Validate(); err != nil {
		return Result[Page[Recipe]]{Outcome: Failure, Value: fallback(), Err: err}
	}
	rel := c.catalogPath("recipes", 0)
	rel.RawQuery = req.values().Encode()
	return read(ctx, c, rel, fallback, func(raw []byte) (Page[Recipe], error) {
		return decodePage[Recipe](raw, "recipes", req)
	})
}

// Recipe fetches a single recipe.
func (c *Client) Recipe(ctx context.Context, id int64) Result[Recipe] {
	fallback := func() Recipe { return Recipe{ID: id} }
	if err := validateID("recipe_id", id); err != nil {
		return Result[Recipe]{Outcome: Failure, Value: fallback(), Err: err}
	}
	return read(ctx, c, c.catalogPath("recipes", id), fallback, decodeJSON[Recipe])
}

// Ingredients lists ingredients matching q.
func (c *Client) Ingredients(ctx context.Context, q IngredientQuery) Result[Page[Ingredient]] {
	fallback := emptyPage[Ingredient](q.ListRequest)
	if err := q.Validate(); err != nil {
		return Result[Page[Ingredient]]{Outcome: Failure, Value: fallback(), Err: err}
	}
	rel := c.catalogPath("ingredients", 0)
	rel.RawQuery = q.values().Encode()
	return read(ctx, c, rel, fallback, func(raw []byte) (Page[Ingredient], error) {
		return decodePage[Ingredient](raw, "ingredients", q.ListRequest)
	})
}

// Ingredient fetches a single ingredient.
func (c *Client) Ingredient(ctx context.Context, id int64) Result[Ingredient] {
	fallback := func() Ingredient { return Ingredient{ID: id} }
	if err := validateID("ingredient_id", id); err != nil {
		return Result[Ingredient]{Outcome: Failure, Value: fallback(), Err: err}
	}
	return read(ctx, c, c.catalogPath("ingredients", id), fallback, decodeJSON[Ingredient])
}

func decodeJSON[T any](raw []byte) (T, error) {
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
