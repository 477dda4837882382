package notify

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	err  error

	mu  sync.Mutex
	got []Notification
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Deliver(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return r.err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

type blocking struct{}

func (blocking) Name() string { return "slow" }

func (blocking) Deliver(ctx context.Context, _ Notification) error {
	<-ctx.Done()
	return ctx.Err()
}

type panicking struct{}

func (panicking) Name() string { return "broken" }

func (panicking) Deliver(context.Context, Notification) error { panic("boom") }

func TestDispatchReachesEveryChannel(t *testing.T) {
	a := &recorder{name: "a"}
	b := &recorder{name: "b"}
	d := NewDispatcher(time.Second, a, b)

	d.Dispatch(context.Background(), "Budget Alert!", "hello")

	require.Equal(t, 1, a.count())
	require.Equal(t, 1, b.count())
	assert.Equal(t, "hello", a.got[0].Message)
	assert.Equal(t, "Budget Alert!", b.got[0].Title)
	assert.Equal(t, []string{"a", "b"}, d.Channels())
}

func TestDispatchIsolatesFailures(t *testing.T) {
	failing := &recorder{name: "failing", err: errors.New("no display")}
	ok := &recorder{name: "ok"}

	var mu sync.Mutex
	var failed []string
	d := NewDispatcher(50*time.Millisecond, failing, blocking{}, panicking{}, ok)
	d.OnError = func(e *DispatchError) {
		mu.Lock()
		failed = append(failed, e.Channel)
		mu.Unlock()
	}

	start := time.Now()
	d.Dispatch(context.Background(), "t", "m")

	assert.Less(t, time.Since(start), 2*time.Second, "slow channel must not hold up dispatch")
	assert.Equal(t, 1, ok.count())
	assert.ElementsMatch(t, []string{"failing", "slow", "broken"}, failed)
}

func TestDispatchWithNoChannels(t *testing.T) {
	d := NewDispatcher(0)
	assert.NotPanics(t, func() { d.Dispatch(context.Background(), "t", "m") })
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	require.NoError(t, c.Deliver(context.Background(), Notification{Message: "Your wallet just cried out in pain."}))
	assert.Equal(t, "[SCOLD] Your wallet just cried out in pain.\n", buf.String())
}

func TestDesktopChannels(t *testing.T) {
	var calls []string
	origNotify, origAlert := beeepNotify, beeepAlert
	t.Cleanup(func() { beeepNotify, beeepAlert = origNotify, origAlert })
	beeepNotify = func(title, msg string) error { calls = append(calls, "notify:"+title+":"+msg); return nil }
	beeepAlert = func(title, msg string) error { calls = append(calls, "alert:"+title+":"+msg); return nil }

	n := Notification{Title: "Budget Alert!", Message: "m"}
	require.NoError(t, Desktop{}.Deliver(context.Background(), n))
	require.NoError(t, Popup{}.Deliver(context.Background(), n))
	assert.Equal(t, []string{"notify:Budget Alert!:m", "alert:Budget Alert!:m"}, calls)
}

func TestFeedRingBuffer(t *testing.T) {
	f := NewFeed(2)
	f.Publish(Event{ID: "1"})
	f.Publish(Event{ID: "2"})
	f.Publish(Event{ID: "3"})

	events := f.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "2", events[0].ID)
	assert.Equal(t, "3", events[1].ID)
}

func TestFeedSubscribers(t *testing.T) {
	f := NewFeed(10)
	ch, unsubscribe := f.Subscribe(1)
	assert.Equal(t, 1, f.SubscriberCount())

	require.NoError(t, f.Deliver(context.Background(), Notification{Title: "t", Message: "m", Tier: "severe"}))
	ev := <-ch
	assert.Equal(t, "alert", ev.Type)
	assert.Equal(t, "severe", ev.Tier)
	assert.NotEmpty(t, ev.ID)

	// full buffer drops instead of blocking
	f.Publish(Event{ID: "a"})
	f.Publish(Event{ID: "b"})
	assert.Len(t, f.Events(), 3)

	unsubscribe()
	assert.Zero(t, f.SubscriberCount())
}

func TestServerEndpoints(t *testing.T) {
	f := NewFeed(10)
	f.Publish(Event{ID: "x", Type: "alert", Message: "m"})
	checks := 0
	srv := NewServer("", f, func(context.Context) (int, error) {
		checks++
		return 2, nil
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/alerts")
	require.NoError(t, err)
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, body.String(), `"id":"x"`)

	resp, err = http.Post(ts.URL+"/v1/check", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	body.Reset()
	_, _ = body.ReadFrom(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"alerts":2}`, body.String())
	assert.Equal(t, 1, checks)
	assert.Equal(t, int64(1), srv.status().CheckCount)
}
