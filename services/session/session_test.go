package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"ruma/models"

	"github.com/go-redis/redis/v8"
)

func TestMemoryStoreGetAbsent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	sess, err := s.Get(context.Background(), "U1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserID != "U1" || sess.Mode != models.ModeNone {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestMemoryStorePutIsCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	sess := models.NewSession("U1")
	sess.Start(models.ModeAddRoom)
	sess.Room.Set("name", "A")
	if err := s.Put(ctx, "U1", sess); err != nil {
		t.Fatal(err)
	}
	sess.Room.Set("name", "mutated")

	got, _ := s.Get(ctx, "U1")
	if got.Room.Answers["name"] != "A" {
		t.Fatalf("store shares state with caller: %q", got.Room.Answers["name"])
	}
	got.Room.Cursor = 9
	again, _ := s.Get(ctx, "U1")
	if again.Room.Cursor != 0 {
		t.Fatal("Get returned a shared value")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(30 * time.Minute)
	s.now = func() time.Time { return now }

	sess := models.NewSession("U1")
	sess.Start(models.ModeCancel)
	_ = s.Put(ctx, "U1", sess)

	now = now.Add(29 * time.Minute)
	if got, _ := s.Get(ctx, "U1"); got.Mode != models.ModeCancel {
		t.Fatalf("session expired early: %s", got.Mode)
	}

	now = now.Add(time.Minute)
	if got, _ := s.Get(ctx, "U1"); got.Mode != models.ModeNone {
		t.Fatalf("session should have expired, mode %s", got.Mode)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	_ = s.Put(ctx, "U1", models.NewSession("U1"))
	now = now.Add(30 * time.Second)
	_ = s.Put(ctx, "U2", models.NewSession("U2"))
	now = now.Add(45 * time.Second)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if n := s.Sweep(); n != 0 {
		t.Fatalf("second Sweep removed %d, want 0", n)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	sess := models.NewSession("U1")
	sess.IsAdmin = true
	_ = s.Put(ctx, "U1", sess)
	_ = s.Delete(ctx, "U1")
	if got, _ := s.Get(ctx, "U1"); got.IsAdmin {
		t.Fatal("Delete kept the admin flag")
	}
}

func TestDecodeSessionResetsInconsistentPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want models.Mode
	}{
		{"consistent", `{"mode":"cancel","cancel":{"bookingId":"x"}}`, models.ModeCancel},
		{"missing payload", `{"mode":"new-booking","isAdmin":true}`, models.ModeNone},
		{"two payloads", `{"mode":"add-room","room":{},"admin":{}}`, models.ModeNone},
		{"empty mode", `{}`, models.ModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := decodeSession("U1", []byte(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if sess.Mode != tt.want || sess.UserID != "U1" {
				t.Fatalf("got mode %s user %s", sess.Mode, sess.UserID)
			}
			if !sess.Consistent() {
				t.Fatal("decoded session not consistent")
			}
		})
	}
}

func TestDecodeSessionKeepsAdminOnReset(t *testing.T) {
	sess, err := decodeSession("U1", []byte(`{"mode":"new-booking","isAdmin":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if !sess.IsAdmin {
		t.Fatal("admin flag lost")
	}
}

func TestKeyedMutexSerialisesPerKey(t *testing.T) {
	km := NewKeyedMutex()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("U1")
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
			unlock()
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
	if km.Len() != 0 {
		t.Fatalf("locks leaked: %d", km.Len())
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	unlockA := km.Lock("A")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := km.Lock("B")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on B blocked behind A")
	}
}

// TestRedisStoreRoundTrip runs only against a reachable Redis.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	s := NewRedisStore(client, time.Minute, nil)
	sess := models.NewSession("U-test")
	sess.Start(models.ModeAdminLogin)
	sess.Login.Username = "root"
	if err := s.Put(ctx, "U-test", sess); err != nil {
		t.Fatal(err)
	}
	defer s.Delete(ctx, "U-test")

	got, err := s.Get(ctx, "U-test")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mode != models.ModeAdminLogin || got.Login.Username != "root" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if ttl := client.TTL(ctx, sessionKey("U-test")).Val(); ttl <= 0 {
		t.Fatalf("no ttl set: %v", ttl)
	}
}
