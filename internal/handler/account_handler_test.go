package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/authgate/internal/account"
	"github.com/hitoshi/authgate/internal/model"
)

// --- モック定義 ---

type mockAccountService struct {
	listFn func(ctx context.Context) ([]account.Summary, error)
}

func (m *mockAccountService) List(ctx context.Context) ([]account.Summary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// --- テスト ---

func TestAccountHandler_List_Success(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &mockAccountService{
		listFn: func(ctx context.Context) ([]account.Summary, error) {
			return []account.Summary{
				{ID: "a2", Email: "second@example.com", CreatedAt: created.Add(time.Hour)},
				{ID: "a1", Email: "first@example.com", CreatedAt: created},
			}, nil
		},
	}
	h := NewAccountHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body []map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if len(body) != 2 {
		t.Fatalf("len = %d, want 2", len(body))
	}
	if body[0]["id"] != "a2" {
		t.Errorf("body[0].id = %v, want %q", body[0]["id"], "a2")
	}
	// パスワードハッシュがレスポンスに含まれないこと
	for _, entry := range body {
		if _, ok := entry["password_hash"]; ok {
			t.Error("response must not contain password_hash")
		}
	}
}

func TestAccountHandler_List_Empty_ReturnsEmptyArray(t *testing.T) {
	svc := &mockAccountService{
		listFn: func(ctx context.Context) ([]account.Summary, error) {
			return []account.Summary{}, nil
		},
	}
	h := NewAccountHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	// nullではなく空配列を返すこと
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestAccountHandler_List_StorageError_Returns503(t *testing.T) {
	svc := &mockAccountService{
		listFn: func(ctx context.Context) ([]account.Summary, error) {
			return nil, model.NewStorageUnavailableError()
		},
	}
	h := NewAccountHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
