package ratelimit

import (
	"context"
	"sync"
	"time"
)

// windowEntry は1識別子分の固定ウィンドウカウンタ。
// ウィンドウ長を保持し、クリーンアップは経過済みウィンドウだけを対象にする。
type windowEntry struct {
	count       int64
	window      time.Duration
	windowStart time.Time
}

// MemoryStore はプロセス内のインメモリ固定ウィンドウストア。
// 単一インスタンスのデプロイで使用する。
// 同一キーのincrement-and-checkはミューテックスで直列化され、
// 同時リクエストがどちらも上限をすり抜けるレースを防ぐ。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	now    func() time.Time
	stopCh chan struct{}
}

// NewMemoryStore はMemoryStoreを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go s.cleanupLoop(cleanupInterval)

	return s
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}

// Incr は指定キーの現在ウィンドウのカウンタをインクリメントし、加算後の値を返す。
// ウィンドウが経過している場合は新しいウィンドウをカウント1で開始する。
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, ok := s.entries[key]
	if !ok || now.Sub(entry.windowStart) >= window {
		s.entries[key] = &windowEntry{count: 1, window: window, windowStart: now}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

// EntryCount は現在保持しているカウンタのエントリ数を返す。
// テストおよびメトリクス用。
func (s *MemoryStore) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// cleanupLoop はバックグラウンドで期限切れエントリを定期的にクリーンアップする。
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup は自身のウィンドウが経過したエントリを削除する。
// 進行中のウィンドウは削除対象にしない。クリーンアップ間隔がウィンドウ長より
// 短くても、上限に達したカウンタがウィンドウ途中でリセットされることはない。
func (s *MemoryStore) cleanup() {
	now := s.now()

	s.mu.Lock()
	for key, entry := range s.entries {
		if now.Sub(entry.windowStart) >= entry.window {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
