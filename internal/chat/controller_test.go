// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/vehicle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSearcher records calls and returns canned results.
type fakeSearcher struct {
	mu       sync.Mutex
	result   *vehicle.SearchResult
	err      error
	detail   *vehicle.Vehicle
	detErr   error
	block    chan struct{}
	started  chan struct{}
	calls    []Request
	detailID []int64
}

func (f *fakeSearcher) Search(ctx context.Context, message string, lang locale.Language, convCtx *vehicle.Context) (*vehicle.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Request{Message: message, Language: lang, Context: convCtx})
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeSearcher) Details(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailID = append(f.detailID, id)
	return f.detail, f.detErr
}

func searchResult(ai string, ids ...int64) *vehicle.SearchResult {
	res := &vehicle.SearchResult{
		Action:     vehicle.ActionSearch,
		Success:    true,
		AIResponse: ai,
		Vehicles:   make([]vehicle.Vehicle, 0, len(ids)),
	}
	for _, id := range ids {
		res.Vehicles = append(res.Vehicles, vehicle.Vehicle{ID: id})
	}
	return res
}

// =============================================================================
// BEGIN / COMPLETE
// =============================================================================

func TestBegin_RejectsBlank(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Italian)
	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := c.Begin(in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Empty(t, c.Messages())
	assert.False(t, c.Busy())
}

func TestBegin_RejectsWhileBusy(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Italian)
	_, err := c.Begin("first")
	require.NoError(t, err)
	assert.True(t, c.Busy())

	_, err = c.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, c.Messages(), 1)
}

func TestBegin_ContextFromLastVehicles(t *testing.T) {
	c := New(&fakeSearcher{}, locale.English)

	req, err := c.Begin("family car")
	require.NoError(t, err)
	assert.Nil(t, req.Context)
	assert.Equal(t, locale.English, req.Language)
	_, err = c.Complete(searchResult("three options", 11, 4, 7), nil)
	require.NoError(t, err)

	req, err = c.Begin("tell me about the second")
	require.NoError(t, err)
	require.NotNil(t, req.Context)
	assert.Equal(t, []int64{11, 4, 7}, req.Context.LastSearchResults)
	_, err = c.Complete(nil, errors.New("timeout"))
	require.NoError(t, err)

	// An error reply does not clear the context.
	req, err = c.Begin("again")
	require.NoError(t, err)
	require.NotNil(t, req.Context)
	assert.Equal(t, []int64{11, 4, 7}, req.Context.LastSearchResults)
}

func TestBegin_ContextAfterEmptySearch(t *testing.T) {
	c := New(&fakeSearcher{}, locale.English)

	_, err := c.Begin("hybrids")
	require.NoError(t, err)
	_, err = c.Complete(searchResult("two hybrids", 1, 2), nil)
	require.NoError(t, err)

	var empty vehicle.SearchResult
	require.NoError(t, json.Unmarshal([]byte(`{"action":"search","success":true,"vehicles":[]}`), &empty))
	_, err = c.Begin("electric under 5000")
	require.NoError(t, err)
	_, err = c.Complete(&empty, nil)
	require.NoError(t, err)

	req, err := c.Begin("the second one")
	require.NoError(t, err)
	require.NotNil(t, req.Context)
	assert.Empty(t, req.Context.LastSearchResults)

	data, err := json.Marshal(req.Context)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_search_results":[]}`, string(data))

	assert.NotNil(t, c.LastVehicles())
	assert.Empty(t, c.LastVehicles())
}

func TestComplete_Search(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Italian)
	_, err := c.Begin("ibrida")
	require.NoError(t, err)

	msg, err := c.Complete(searchResult("Ecco **due** ibride.", 1, 2), nil)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Equal(t, "Ecco **due** ibride.", msg.Content)
	assert.Equal(t, "Ecco **due** ibride.", msg.AIResponse)
	assert.Equal(t, []int64{1, 2}, vehicle.IDs(msg.Vehicles))
	assert.False(t, msg.IsError)
	assert.False(t, c.Busy())
	assert.Nil(t, c.OpenedVehicle())
}

func TestComplete_DefaultText(t *testing.T) {
	tests := []struct {
		lang locale.Language
		want string
	}{
		{locale.Italian, "Ho trovato alcuni veicoli per te."},
		{locale.English, "I found some vehicles for you."},
	}
	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			c := New(&fakeSearcher{}, tt.lang)
			_, err := c.Begin("x")
			require.NoError(t, err)
			msg, err := c.Complete(searchResult("  ", 3), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Content)
			assert.Equal(t, "  ", msg.AIResponse)
		})
	}
}

func TestComplete_Details(t *testing.T) {
	var opened []int64
	c := New(&fakeSearcher{}, locale.Italian)
	c.SetOpenCallback(func(v *vehicle.Vehicle) { opened = append(opened, v.ID) })

	_, err := c.Begin("dettagli della prima")
	require.NoError(t, err)
	msg, err := c.Complete(&vehicle.SearchResult{
		Action:  vehicle.ActionDetails,
		Success: true,
		Vehicle: &vehicle.Vehicle{ID: 42, Brand: "Alfa Romeo"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ecco i dettagli del veicolo richiesto:", msg.Content)
	assert.Empty(t, msg.Vehicles)
	require.NotNil(t, c.OpenedVehicle())
	assert.Equal(t, int64(42), c.OpenedVehicle().ID)
	assert.Equal(t, []int64{42}, opened)

	c.CloseVehicle()
	assert.Nil(t, c.OpenedVehicle())
}

func TestComplete_DetailsWithoutVehicleIsSearch(t *testing.T) {
	c := New(&fakeSearcher{}, locale.English)
	_, err := c.Begin("x")
	require.NoError(t, err)
	_, err = c.Complete(searchResult("three", 4, 5, 6), nil)
	require.NoError(t, err)

	_, err = c.Begin("details of the fourth")
	require.NoError(t, err)
	msg, err := c.Complete(&vehicle.SearchResult{Action: vehicle.ActionDetails, Success: true, AIResponse: "hm"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hm", msg.Content)
	assert.False(t, msg.AnsweredSearch())
	assert.Nil(t, c.OpenedVehicle())

	// A reply without a vehicles list keeps the earlier results as context.
	req, err := c.Begin("the first then")
	require.NoError(t, err)
	require.NotNil(t, req.Context)
	assert.Equal(t, []int64{4, 5, 6}, req.Context.LastSearchResults)
}

func TestComplete_ErrorIsLocalized(t *testing.T) {
	for _, lang := range locale.Codes() {
		c := New(&fakeSearcher{}, lang)
		_, err := c.Begin("x")
		require.NoError(t, err)
		msg, err := c.Complete(nil, errors.New("boom"))
		require.NoError(t, err)
		assert.True(t, msg.IsError)
		assert.Equal(t, locale.T(lang, "chat.error"), msg.Content)
	}
}

func TestComplete_UsesLanguageOfRequest(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Italian)
	_, err := c.Begin("x")
	require.NoError(t, err)
	require.NoError(t, c.SetLanguage(locale.German))

	msg, err := c.Complete(nil, errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, locale.T(locale.Italian, "chat.error"), msg.Content)
}

func TestComplete_WithoutBegin(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Italian)
	_, err := c.Complete(searchResult("x"), nil)
	assert.ErrorIs(t, err, ErrNotPending)
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit(t *testing.T) {
	fs := &fakeSearcher{result: searchResult("ok", 5)}
	c := New(fs, locale.Spanish)

	msg, err := c.Submit(context.Background(), "coche eléctrico")
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "coche eléctrico", msgs[0].Content)
	assert.Equal(t, []int64{5}, vehicle.IDs(c.LastVehicles()))

	require.Len(t, fs.calls, 1)
	assert.Equal(t, locale.Spanish, fs.calls[0].Language)
	assert.True(t, c.Dirty())
}

func TestSubmit_ConcurrentRejected(t *testing.T) {
	fs := &fakeSearcher{
		result:  searchResult("ok", 1),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	c := New(fs, locale.Italian)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.Submit(context.Background(), "first")
		assert.NoError(t, err)
	}()

	<-fs.started
	_, err := c.Submit(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.OpenVehicle(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, c.Clear(), ErrBusy)

	close(fs.block)
	wg.Wait()

	assert.Len(t, c.Messages(), 2)
	assert.False(t, c.Busy())
}

func TestSubmit_Canceled(t *testing.T) {
	fs := &fakeSearcher{block: make(chan struct{})}
	c := New(fs, locale.English)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg, err := c.Submit(ctx, "x")
	require.NoError(t, err)
	assert.True(t, msg.IsError)
}

// =============================================================================
// DETAILS / STATE
// =============================================================================

func TestOpenVehicle(t *testing.T) {
	fs := &fakeSearcher{detail: &vehicle.Vehicle{ID: 9, Brand: "Lancia"}}
	c := New(fs, locale.Italian)

	v, err := c.OpenVehicle(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Lancia", v.Brand)
	assert.Equal(t, v, c.OpenedVehicle())
	assert.Equal(t, []int64{9}, fs.detailID)
	assert.Empty(t, c.Messages())
}

func TestOpenVehicle_ErrorAppendsNothing(t *testing.T) {
	fs := &fakeSearcher{detErr: errors.New("not found")}
	c := New(fs, locale.Italian)

	_, err := c.OpenVehicle(context.Background(), 9)
	assert.Error(t, err)
	assert.Nil(t, c.OpenedVehicle())
	assert.Empty(t, c.Messages())
	assert.False(t, c.Busy())
}

func TestSetLanguage(t *testing.T) {
	c := New(&fakeSearcher{}, locale.Language("xx"))
	assert.Equal(t, locale.Italian, c.Language())

	assert.ErrorIs(t, c.SetLanguage("jp"), locale.ErrUnsupported)
	require.NoError(t, c.SetLanguage(locale.French))
	assert.Equal(t, locale.French, c.Language())
	assert.Equal(t, locale.French, c.Conversation().Language)
}

func TestClearAndLoad(t *testing.T) {
	fs := &fakeSearcher{result: searchResult("ok", 1, 2)}
	c := New(fs, locale.Italian)
	_, err := c.Submit(context.Background(), "x")
	require.NoError(t, err)

	saved := c.Conversation()
	c.MarkSaved()
	assert.False(t, c.Dirty())

	require.NoError(t, c.Clear())
	assert.Empty(t, c.Messages())
	assert.Nil(t, c.LastVehicles())
	assert.NotEqual(t, saved.ID, c.Conversation().ID)

	saved.Language = locale.German
	require.NoError(t, c.Load(saved))
	assert.Equal(t, locale.German, c.Language())
	assert.Equal(t, []int64{1, 2}, vehicle.IDs(c.LastVehicles()))
}

func TestMessages_ReturnsCopies(t *testing.T) {
	c := New(&fakeSearcher{result: searchResult("ok", 1)}, locale.Italian)
	_, err := c.Submit(context.Background(), "x")
	require.NoError(t, err)

	msgs := c.Messages()
	msgs[1].Vehicles[0].ID = 100
	msgs[0].Content = "changed"

	again := c.Messages()
	assert.Equal(t, "x", again[0].Content)
	assert.Equal(t, int64(1), again[1].Vehicles[0].ID)
}
