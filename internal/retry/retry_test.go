package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestWithBackoffSuccess(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), DefaultConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestWithBackoffRetriesThenSucceeds(t *testing.T) {
	config := Config{MaxRetries: 3, BaseDelay: time.Millisecond}
	calls := 0
	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("request failed with status 503")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestWithBackoffNonRetryable(t *testing.T) {
	config := Config{MaxRetries: 3, BaseDelay: time.Millisecond}
	calls := 0
	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		calls++
		return errors.New("request failed with status 404")
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected no retries for client error, got %d calls", calls)
	}
	if !strings.Contains(err.Error(), "non-retryable") {
		t.Errorf("Expected non-retryable error, got %v", err)
	}
}

func TestWithBackoffExhaustsAttempts(t *testing.T) {
	config := Config{MaxRetries: 2, BaseDelay: time.Millisecond}
	calls := 0
	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls (1 + 2 retries), got %d", calls)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestWithBackoffContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := Config{MaxRetries: 5, BaseDelay: time.Second}
	calls := 0
	err := WithBackoff(ctx, config, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("timeout")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err       error
		retryable bool
	}{
		{nil, false},
		{errors.New("dial tcp: i/o timeout"), true},
		{errors.New("connection refused"), true},
		{errors.New("connection reset by peer"), true},
		{fmt.Errorf("request failed with status 500"), true},
		{fmt.Errorf("request failed with status 429"), true},
		{fmt.Errorf("request failed with status 400"), false},
		{fmt.Errorf("request failed with status 404"), false},
		{errors.New("something unexpected"), true},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.retryable {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.retryable)
		}
	}
}

func TestHTTPStatusRetryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{200, false},
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := HTTPStatusRetryable(tt.status); got != tt.retryable {
			t.Errorf("HTTPStatusRetryable(%d) = %v, want %v", tt.status, got, tt.retryable)
		}
	}
}
