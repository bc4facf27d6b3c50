package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/state"
)

// Overview is everything the dashboard and system views show.
type Overview struct {
	Health     api.Result[api.Health]
	System     api.Result[api.SystemInfo]
	Tables     api.Result[[]api.Table]
	Resources  api.Result[api.Resources]
	Endpoints  api.Result[[]api.Endpoint]
	Activities api.Result[api.Page[api.Activity]]
}

// Degraded reports whether any read did not succeed.
func (o Overview) Degraded() bool {
	for _, outcome := range o.outcomes() {
		if outcome != api.Success {
			return true
		}
	}
	return false
}

// FellBack reports whether any read returned fallback data.
func (o Overview) FellBack() bool {
	for _, outcome := range o.outcomes() {
		if outcome == api.Fallback {
			return true
		}
	}
	return false
}

// Err joins the errors of reads that failed.
func (o Overview) Err() error {
	var errs []error
	add := func(name string, outcome api.Outcome, err error) {
		if outcome == api.Failure && err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	add("health", o.Health.Outcome, o.Health.Err)
	add("system info", o.System.Outcome, o.System.Err)
	add("tables", o.Tables.Outcome, o.Tables.Err)
	add("resources", o.Resources.Outcome, o.Resources.Err)
	add("endpoints", o.Endpoints.Outcome, o.Endpoints.Err)
	add("activities", o.Activities.Outcome, o.Activities.Err)
	return errors.Join(errs...)
}

func (o Overview) outcomes() []api.Outcome {
	return []api.Outcome{
		o.Health.Outcome,
		o.System.Outcome,
		o.Tables.Outcome,
		o.Resources.Outcome,
		o.Endpoints.Outcome,
		o.Activities.Outcome,
	}
}

// LoadOverview issues all overview reads in parallel.
func LoadOverview(ctx context.Context, svc api.Service, activities api.ListRequest) Overview {
	var (
		o  Overview
		wg sync.WaitGroup
	)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	run(func() { o.Health = svc.Health(ctx) })
	run(func() { o.System = svc.SystemInfo(ctx) })
	run(func() { o.Tables = svc.DatabaseTables(ctx) })
	run(func() { o.Resources = svc.ResourceUsage(ctx) })
	run(func() { o.Endpoints = svc.APIEndpoints(ctx) })
	run(func() { o.Activities = svc.RecentActivities(ctx, activities) })
	wg.Wait()
	return o
}

// OverviewLoad adapts LoadOverview to a LoadFunc. Per-read failures travel
// inside the Overview so one failing tile does not hide the others.
func OverviewLoad(svc api.Service, activityLimit int) LoadFunc[Overview] {
	req := api.NewListRequest(activityLimit)
	return func(ctx context.Context) (Overview, error) {
		return LoadOverview(ctx, svc, req), nil
	}
}

// Listing is one page of a catalog view together with the request that
// produced it.
type Listing[T any] struct {
	Request api.ListRequest
	Outcome api.Outcome
	Page    api.Page[T]
}

// CloneListing copies the item slice of a listing.
func CloneListing[T any](l Listing[T]) Listing[T] {
	l.Page.Items = state.CloneSlice(l.Page.Items)
	return l
}

// RecipesLoad lists recipes for the current query. A Failure is returned as
// an error so the store keeps the last good page.
func RecipesLoad(svc api.Service, query *Query[api.ListRequest]) LoadFunc[Listing[api.Recipe]] {
	return func(ctx context.Context) (Listing[api.Recipe], error) {
		req := query.Get()
		res := svc.Recipes(ctx, req)
		return listing(req, res)
	}
}

// IngredientsLoad lists ingredients for the current query.
func IngredientsLoad(svc api.Service, query *Query[api.IngredientQuery]) LoadFunc[Listing[api.Ingredient]] {
	return func(ctx context.Context) (Listing[api.Ingredient], error) {
		q := query.Get()
		res := svc.Ingredients(ctx, q)
		return listing(q.ListRequest, res)
	}
}

func listing[T any](req api.ListRequest, res api.Result[api.Page[T]]) (Listing[T], error) {
	l := Listing[T]{Request: req, Outcome: res.Outcome, Page: res.Value}
	if res.Outcome == api.Failure {
		return l, res.Err
	}
	return l, nil
}
