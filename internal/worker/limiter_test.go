package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("https://www.nseindia.com/a") {
		t.Error("First request should pass")
	}
	if !l.Allow("https://www.nseindia.com/b") {
		t.Error("Second request should pass within burst")
	}
	if l.Allow("https://www.nseindia.com/c") {
		t.Error("Third immediate request should be limited")
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://www.nseindia.com/a") {
		t.Error("First host should pass")
	}
	if !l.Allow("https://www.bseindia.com/a") {
		t.Error("Second host must have its own budget")
	}
	if l.Allow("https://www.nseindia.com/b") {
		t.Error("First host should now be limited")
	}
}

func TestLimiter_SetHostRateOverride(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetHostRate("www.nseindia.com", 1000, 10)

	for i := 0; i < 10; i++ {
		if !l.Allow("https://www.nseindia.com/a") {
			t.Fatalf("Request %d should pass under the raised burst", i)
		}
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow("https://www.nseindia.com/a") // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://www.nseindia.com/b"); err == nil {
		t.Error("Expected Wait to give up when the context expires")
	}
}

func TestLimiter_WaitWithDelayCancellable(t *testing.T) {
	l := NewLimiter(100, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.WaitWithDelay(ctx, "https://www.nseindia.com/a", 5*time.Second)
	if err == nil {
		t.Error("Expected the crawl delay to be abandoned on context expiry")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("http://bad url with spaces\x7f") {
		t.Error("Unparseable URL must not pass")
	}
}
