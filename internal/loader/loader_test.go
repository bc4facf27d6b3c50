package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/state"
)

// fakeService implements the reads the loaders use. Other methods panic via
// the nil embedded interface.
type fakeService struct {
	api.Service

	barrier     *sync.WaitGroup
	recipes     func(req api.ListRequest) api.Result[api.Page[api.Recipe]]
	ingredients func(q api.IngredientQuery) api.Result[api.Page[api.Ingredient]]
	tablesErr   error
}

func (f *fakeService) wait() {
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
}

func (f *fakeService) Health(context.Context) api.Result[api.Health] {
	f.wait()
	return api.Result[api.Health]{Value: api.Health{Status: "healthy"}}
}

func (f *fakeService) SystemInfo(context.Context) api.Result[api.SystemInfo] {
	f.wait()
	return api.Result[api.SystemInfo]{Outcome: api.Fallback, Value: api.SystemInfo{Status: "offline"}}
}

func (f *fakeService) DatabaseTables(context.Context) api.Result[[]api.Table] {
	f.wait()
	if f.tablesErr != nil {
		return api.Result[[]api.Table]{Outcome: api.Failure, Value: api.FallbackTables(), Err: f.tablesErr}
	}
	return api.Result[[]api.Table]{Value: []api.Table{{Name: "recipes", RowCount: 12}}}
}

func (f *fakeService) ResourceUsage(context.Context) api.Result[api.Resources] {
	f.wait()
	return api.Result[api.Resources]{}
}

func (f *fakeService) APIEndpoints(context.Context) api.Result[[]api.Endpoint] {
	f.wait()
	return api.Result[[]api.Endpoint]{}
}

func (f *fakeService) RecentActivities(_ context.Context, req api.ListRequest) api.Result[api.Page[api.Activity]] {
	f.wait()
	return api.Result[api.Page[api.Activity]]{Value: api.Page[api.Activity]{Items: []api.Activity{}, Limit: req.Limit}}
}

func (f *fakeService) Recipes(_ context.Context, req api.ListRequest) api.Result[api.Page[api.Recipe]] {
	return f.recipes(req)
}

func (f *fakeService) Ingredients(_ context.Context, q api.IngredientQuery) api.Result[api.Page[api.Ingredient]] {
	return f.ingredients(q)
}

func TestLoader_AppliesOnlyNewestCompletion(t *testing.T) {
	store := state.NewStore[string](nil)
	gates := []chan struct{}{make(chan struct{}), make(chan struct{})}
	var mu sync.Mutex
	call := 0
	l := New(store, func(ctx context.Context) (string, error) {
		mu.Lock()
		n := call
		call++
		mu.Unlock()
		<-gates[n]
		return []string{"first", "second"}[n], nil
	}, Options{Logger: zerolog.Nop()})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); l.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { mu.Lock(); defer mu.Unlock(); return call == 1 }, time.Second, time.Millisecond)
	wg.Add(1)
	go func() { defer wg.Done(); l.Fetch(context.Background()) }()
	require.Eventually(t, func() bool { mu.Lock(); defer mu.Unlock(); return call == 2 }, time.Second, time.Millisecond)

	close(gates[1])
	require.Eventually(t, func() bool { return store.Snapshot().Data == "second" }, time.Second, time.Millisecond)
	close(gates[0])
	wg.Wait()

	assert.Equal(t, "second", store.Snapshot().Data, "slow earlier fetch must not overwrite newer data")
	assert.Equal(t, uint64(2), store.Snapshot().Seq)
}

func TestLoader_DetachDropsLateResults(t *testing.T) {
	store := state.NewStore[int](nil)
	release := make(chan struct{})
	started := make(chan struct{})
	l := New(store, func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 42, nil
	}, Options{Logger: zerolog.Nop()})

	done := make(chan struct{})
	go func() { l.Fetch(context.Background()); close(done) }()
	<-started
	l.Detach()
	close(release)
	<-done

	assert.False(t, l.Alive())
	assert.False(t, store.Snapshot().HasData)

	l.Fetch(context.Background())
	assert.False(t, store.Snapshot().HasData, "detached loader does not fetch")
}

func TestLoader_AppliesTimeout(t *testing.T) {
	store := state.NewStore[bool](nil)
	l := New(store, func(ctx context.Context) (bool, error) {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 50*time.Millisecond, nil
	}, Options{Timeout: 50 * time.Millisecond, Logger: zerolog.Nop()})

	l.Fetch(context.Background())
	assert.True(t, store.Snapshot().Data)
}

func TestLoadOverview_RunsReadsInParallel(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(6)
	svc := &fakeService{barrier: &barrier}

	done := make(chan Overview)
	go func() { done <- LoadOverview(context.Background(), svc, api.NewListRequest(10)) }()

	select {
	case o := <-done:
		assert.Equal(t, "healthy", o.Health.Value.Status)
		assert.Equal(t, 10, o.Activities.Value.Limit)
		assert.True(t, o.Degraded())
		assert.True(t, o.FellBack())
		assert.NoError(t, o.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("overview reads did not run concurrently")
	}
}

func TestOverview_ErrJoinsFailures(t *testing.T) {
	boom := errors.New("status 500")
	svc := &fakeService{tablesErr: boom}
	o, err := OverviewLoad(svc, 5)(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, o.Err(), boom)
	assert.ErrorContains(t, o.Err(), "tables")
	assert.Len(t, o.Tables.Value, 2, "failure still carries fallback tables")
}

func TestRecipesLoad_FailureKeepsLastPage(t *testing.T) {
	fail := false
	svc := &fakeService{recipes: func(req api.ListRequest) api.Result[api.Page[api.Recipe]] {
		if fail {
			return api.Result[api.Page[api.Recipe]]{Outcome: api.Failure, Err: errors.New("status 502")}
		}
		return api.Result[api.Page[api.Recipe]]{Value: api.Page[api.Recipe]{Items: []api.Recipe{{ID: 1, Title: "Japchae"}}, Total: 1}}
	}}
	query := NewQuery(api.NewListRequest(20))
	store := state.NewStore(CloneListing[api.Recipe])
	l := New(store, RecipesLoad(svc, query), Options{Logger: zerolog.Nop()})

	l.Fetch(context.Background())
	require.True(t, store.Snapshot().HasData)

	fail = true
	query.Update(func(r api.ListRequest) api.ListRequest { return r.WithSearch("kimchi") })
	l.Fetch(context.Background())

	snap := store.Snapshot()
	assert.Error(t, snap.LastError)
	require.Len(t, snap.Data.Page.Items, 1)
	assert.Equal(t, "Japchae", snap.Data.Page.Items[0].Title)
	assert.Equal(t, "", snap.Data.Request.Search, "displayed listing still describes its own request")
}

func TestIngredientsLoad_PassesQuery(t *testing.T) {
	var got api.IngredientQuery
	svc := &fakeService{ingredients: func(q api.IngredientQuery) api.Result[api.Page[api.Ingredient]] {
		got = q
		return api.Result[api.Page[api.Ingredient]]{Outcome: api.Fallback, Value: api.Page[api.Ingredient]{Items: []api.Ingredient{}}}
	}}
	vague := true
	query := NewQuery(api.IngredientQuery{ListRequest: api.NewListRequest(20)}.WithVague(&vague))

	out, err := IngredientsLoad(svc, query)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.Fallback, out.Outcome)
	require.NotNil(t, got.IsVague)
	assert.True(t, *got.IsVague)
}

func TestQuery_Update(t *testing.T) {
	q := NewQuery(api.ListRequest{Offset: 40, Limit: 20})
	next := q.Update(func(r api.ListRequest) api.ListRequest { return r.WithSearch("bulgogi") })
	assert.Zero(t, next.Offset)
	assert.Equal(t, next, q.Get())

	q.Set(api.ListRequest{Limit: 5})
	assert.Equal(t, 5, q.Get().Limit)
}
