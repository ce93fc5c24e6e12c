package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_Incr_CountsWithinWindow(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	for i := int64(1); i <= 3; i++ {
		count, err := store.Incr(context.Background(), "key-1", 15*time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != i {
			t.Errorf("count = %d, want %d", count, i)
		}
	}
}

// ウィンドウ経過後にカウンタが1から再開することを検証
func TestMemoryStore_Incr_ResetsAfterWindow(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	for i := 0; i < 5; i++ {
		store.Incr(context.Background(), "key-1", 15*time.Minute)
	}

	// ウィンドウ境界ちょうどで新しいウィンドウが始まる
	store.now = func() time.Time { return base.Add(15 * time.Minute) }

	count, err := store.Incr(context.Background(), "key-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count after window elapsed = %d, want 1", count)
	}
}

// ウィンドウ内ではカウンタがリセットされないことを検証
func TestMemoryStore_Incr_NoResetWithinWindow(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	store.Incr(context.Background(), "key-1", 15*time.Minute)

	// ウィンドウ終了の1秒前
	store.now = func() time.Time { return base.Add(15*time.Minute - time.Second) }

	count, err := store.Incr(context.Background(), "key-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestMemoryStore_Incr_IndependentKeys(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	store.Incr(context.Background(), "key-1", 15*time.Minute)
	store.Incr(context.Background(), "key-1", 15*time.Minute)

	count, err := store.Incr(context.Background(), "key-2", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count for key-2 = %d, want 1", count)
	}
}

// 同時インクリメントでカウントが失われないことを検証
func TestMemoryStore_Incr_Concurrent(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			store.Incr(context.Background(), "key-1", time.Hour)
		}()
	}
	wg.Wait()

	count, err := store.Incr(context.Background(), "key-1", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != goroutines+1 {
		t.Errorf("count = %d, want %d", count, goroutines+1)
	}
}

// ウィンドウ経過済みのエントリがクリーンアップで削除されることを検証
func TestMemoryStore_Cleanup_RemovesStaleEntries(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	store.Incr(context.Background(), "stale", 15*time.Minute)

	store.now = func() time.Time { return base.Add(3 * time.Hour) }
	store.Incr(context.Background(), "fresh", 15*time.Minute)

	store.cleanup()

	if n := store.EntryCount(); n != 1 {
		t.Errorf("EntryCount() = %d, want 1 (stale entry should be removed)", n)
	}
}

// クリーンアップ間隔がウィンドウ長より短い構成で、ウィンドウ途中に
// クリーンアップが発火しても進行中のカウンタが消えないことを検証。
// 消えると上限到達済みのクライアントの次の試行が通ってしまう。
func TestMemoryStore_Cleanup_PreservesLiveWindow(t *testing.T) {
	// 本番構成と同じ5分間隔のクリーンアップ
	store := NewMemoryStore(5 * time.Minute)
	defer store.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	for i := 0; i < 5; i++ {
		store.Incr(context.Background(), "key-1", 15*time.Minute)
	}

	// 15分ウィンドウの11分経過時点でクリーンアップが発火
	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	store.cleanup()

	count, err := store.Incr(context.Background(), "key-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 6 {
		t.Errorf("count = %d, want 6 (live window must survive cleanup)", count)
	}
}

// クリーンアップ後もリミッターがウィンドウ内の6回目を拒否し続けることを検証
func TestLimiter_CleanupMidWindow_StillRejectsSixthAttempt(t *testing.T) {
	store := NewMemoryStore(5 * time.Minute)
	defer store.Stop()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	limiter := NewLimiter(store, 5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		if _, err := limiter.Allow(context.Background(), "client-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	store.cleanup()

	allowed, err := limiter.Allow(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("6th attempt inside the window should be rejected even after cleanup")
	}
}
