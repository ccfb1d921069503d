package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type roster struct {
	ClassID  string   `json:"class_id"`
	Students []string `json:"students"`
}

func TestCacheSetGet(t *testing.T) {
	helper := NewCacheHelper(testClient(t), "roster:")
	ctx := context.Background()

	want := roster{ClassID: "1A", Students: []string{"Alice Brown", "Bob White"}}
	if err := helper.Set(ctx, "class:1A", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got roster
	if err := helper.Get(ctx, "class:1A", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ClassID != want.ClassID || len(got.Students) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCacheGetMissing(t *testing.T) {
	helper := NewCacheHelper(testClient(t), "roster:")

	var got roster
	err := helper.Get(context.Background(), "class:none", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "roster:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}
	var got string
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete with nil client should be a no-op, got %v", err)
	}
}

func TestInvalidatePattern(t *testing.T) {
	client := testClient(t)
	helper := NewCacheHelper(client, "roster:")
	ctx := context.Background()

	for _, key := range []string{"student:class:1A", "student:class:1B", "teacher:list"} {
		if err := helper.SetString(ctx, key, "x", time.Minute); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "student:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	for _, key := range []string{"student:class:1A", "student:class:1B"} {
		exists, err := helper.Exists(ctx, key)
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Errorf("expected %s to be invalidated", key)
		}
	}

	exists, err := helper.Exists(ctx, "teacher:list")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Errorf("expected key outside the pattern to survive")
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper := NewCacheHelper(testClient(t), "privilege:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []string{"mark_attendance", "view_attendance"}, nil
	}

	var first []string
	if err := helper.CacheOrExecute(ctx, "role:Teacher", &first, time.Minute, fetch); err != nil {
		t.Fatalf("first CacheOrExecute failed: %v", err)
	}
	if calls != 1 || len(first) != 2 {
		t.Fatalf("expected one fetch with 2 privileges, calls=%d result=%v", calls, first)
	}

	// The async set may still be in flight; wait for the key to land.
	deadline := time.After(2 * time.Second)
	for {
		exists, err := helper.Exists(ctx, "role:Teacher")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("cached value never landed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	var second []string
	if err := helper.CacheOrExecute(ctx, "role:Teacher", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cache hit to skip fetch, fetch ran %d times", calls)
	}
}

func TestCacheManagerDomains(t *testing.T) {
	cm := NewCacheManager(testClient(t))
	ctx := context.Background()

	if err := cm.Roster.SetString(ctx, "k", "roster", time.Minute); err != nil {
		t.Fatalf("roster set failed: %v", err)
	}
	if err := cm.Privilege.SetString(ctx, "k", "privilege", time.Minute); err != nil {
		t.Fatalf("privilege set failed: %v", err)
	}

	// Same logical key, different prefixes, no collision.
	got, err := cm.Roster.GetString(ctx, "k")
	if err != nil || got != "roster" {
		t.Errorf("roster domain read mismatch: %q %v", got, err)
	}
	got, err = cm.Privilege.GetString(ctx, "k")
	if err != nil || got != "privilege" {
		t.Errorf("privilege domain read mismatch: %q %v", got, err)
	}

	if err := cm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
