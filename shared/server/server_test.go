package server

import (
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/oklog/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	var g run.Group
	ln, err := Add(&g, "test", "127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}))
	require.NoError(t, err)

	stop := make(chan struct{})
	errStop := errors.New("stop")
	g.Add(func() error {
		<-stop
		return errStop
	}, func(error) {})

	done := make(chan error, 1)
	go func() { done <- g.Run() }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	close(stop)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, errStop)
	case <-time.After(5 * time.Second):
		t.Fatal("group did not stop")
	}
}

func TestAdd_EmptyAddr(t *testing.T) {
	var g run.Group
	ln, err := Add(&g, "metrics", "", http.NotFoundHandler())
	assert.NoError(t, err)
	assert.Nil(t, ln)
}

func TestAdd_BadAddr(t *testing.T) {
	var g run.Group
	_, err := Add(&g, "test", "not-an-addr", http.NotFoundHandler())
	assert.Error(t, err)
}
