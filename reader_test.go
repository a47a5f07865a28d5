package termline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readResult struct {
	value string
	err   error
}

func startRead(ctx context.Context, r *Reader, label string) <-chan readResult {
	done := make(chan readResult, 1)
	go func() {
		v, err := r.Read(ctx, label)
		done <- readResult{v, err}
	}()
	return done
}

func awaitRead(t *testing.T, done <-chan readResult) readResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(time.Second):
		t.Fatal("read did not return")
		return readResult{}
	}
}

func TestReaderRespond(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Millisecond)
	assert.False(t, r.Respond("early"), "nothing is pending yet")

	done := startRead(context.Background(), r, "What is your name?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)
	assert.Equal(t, "What is your name?", r.Label())

	assert.True(t, r.Respond("Arthur"))

	res := awaitRead(t, done)
	require.NoError(t, res.err)
	assert.Equal(t, "Arthur", res.value)
	assert.Empty(t, r.Label())
	assert.False(t, r.Pending())
}

func TestReaderStaysPendingUntilAnswerIsTaken(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := startRead(ctx, r, "name?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	require.True(t, r.Respond("Arthur"))
	assert.True(t, r.Pending(), "the answer has not been picked up yet")
	assert.Equal(t, "name?", r.Label())

	select {
	case <-done:
		t.Fatal("read returned before polling")
	default:
	}
}

func TestReaderQueuesTypeAheadAnswers(t *testing.T) {
	t.Parallel()

	r := NewReader(20 * time.Millisecond)
	done := startRead(context.Background(), r, "name?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	require.True(t, r.Respond("Arthur"))
	require.True(t, r.Respond("the grail"))
	assert.Equal(t, "Arthur", awaitRead(t, done).value)

	res := awaitRead(t, startRead(context.Background(), r, "quest?"))
	require.NoError(t, res.err)
	assert.Equal(t, "the grail", res.value)
	assert.False(t, r.Pending())
}

func TestReaderEmptyResponse(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Millisecond)
	done := startRead(context.Background(), r, "quest?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	require.True(t, r.Respond(""))
	res := awaitRead(t, done)
	require.NoError(t, res.err)
	assert.Empty(t, res.value)
}

func TestReaderRejectsConcurrentRead(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Millisecond)
	done := startRead(context.Background(), r, "first")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	_, err := r.Read(context.Background(), "second")
	assert.ErrorIs(t, err, ErrReadPending)

	r.Respond("ok")
	assert.Equal(t, "ok", awaitRead(t, done).value)
}

func TestReaderCancel(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := startRead(ctx, r, "color?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	cancel()
	res := awaitRead(t, done)
	assert.ErrorIs(t, res.err, context.Canceled)
	assert.False(t, r.Pending())
	assert.False(t, r.Respond("late"))

	done = startRead(context.Background(), r, "again")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)
	r.Respond("blue")
	assert.Equal(t, "blue", awaitRead(t, done).value)
}

func TestReaderPublishesLabels(t *testing.T) {
	t.Parallel()

	r := NewReader(time.Millisecond)
	var (
		mu     sync.Mutex
		labels []string
	)
	r.Subscribe(func(label string) {
		mu.Lock()
		defer mu.Unlock()
		labels = append(labels, label)
	})

	done := startRead(context.Background(), r, "name?")
	require.Eventually(t, r.Pending, time.Second, time.Millisecond)
	r.Respond("x")
	awaitRead(t, done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"name?", ""}, labels)
}

func TestNewReaderDefaultInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultInputPollInterval, NewReader(0).interval)
}
