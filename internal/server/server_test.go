package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeGracefulShutdown(t *testing.T) {
	requestStarted := make(chan struct{})
	releaseRequest := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		close(requestStarted)
		<-releaseRequest
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: mux}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, listener, 2*time.Second, zap.NewNop())
	}()

	type reply struct {
		body string
		err  error
	}
	replyCh := make(chan reply, 1)
	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/process")
		if err != nil {
			replyCh <- reply{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		replyCh <- reply{body: string(b), err: err}
	}()

	select {
	case <-requestStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}

	cancel()

	select {
	case err := <-done:
		t.Fatalf("server returned before the in-flight request finished: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(releaseRequest)

	r := <-replyCh
	require.NoError(t, r.err)
	assert.Equal(t, "ok", r.body)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	srv := &http.Server{Addr: taken.Addr().String(), Handler: http.NewServeMux()}
	err = Serve(context.Background(), srv, nil, time.Second, zap.NewNop())
	assert.Error(t, err)
}
