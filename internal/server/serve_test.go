package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, zap.NewNop(), ln, DefaultConfig(), "1.0.0")
	}()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/version")
	if err != nil {
		cancel()
		t.Fatalf("request failed: %v", err)
	}
	var body map[string]string
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)
	_ = resp.Body.Close()
	if decodeErr != nil {
		cancel()
		t.Fatalf("failed to decode response: %v", decodeErr)
	}
	if body["version"] != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", body["version"])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() returned error after cancel: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestRunInvalidAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Address = "not-an-address"
	if err := Run(context.Background(), zap.NewNop(), cfg, ""); err == nil {
		t.Fatal("Run() expected error for an invalid address")
	}
}
