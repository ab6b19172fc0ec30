package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"market_backend/internal/feature/symbollist/domain/entity"
	"market_backend/internal/feature/symbollist/usecase"
)

// mockSymbolUsecase はSymbolUsecaseインターフェースのモック実装です。
type mockSymbolUsecase struct {
	ListActiveSymbolsFunc func(ctx context.Context, kind string) ([]entity.Symbol, error)
}

// ListActiveSymbols はモックのListActiveSymbols関数を呼び出します。
func (m *mockSymbolUsecase) ListActiveSymbols(ctx context.Context, kind string) ([]entity.Symbol, error) {
	if m.ListActiveSymbolsFunc != nil {
		return m.ListActiveSymbolsFunc(ctx, kind)
	}
	return nil, nil
}

// TestNewSymbolHandler はNewSymbolHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewSymbolHandler(t *testing.T) {
	t.Parallel()

	mockUC := &mockSymbolUsecase{}
	handler := NewSymbolHandler(mockUC)

	assert.NotNil(t, handler, "handler should not be nil")
	assert.NotNil(t, handler.uc, "usecase should not be nil")
}

// TestSymbolHandler_List はListハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name               string
		url                string
		expectedKind       string
		mockListActiveFunc func(ctx context.Context, kind string) ([]entity.Symbol, error)
		expectedStatus     int
		expectedBody       string
	}{
		{
			name: "success: returns list of symbols",
			url:  "/symbols",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return []entity.Symbol{
					{ID: 1, Code: "SPY", Name: "S&P 500", Kind: entity.KindIndex, DisplayCode: "SPX", IsActive: true, SortKey: 1},
					{ID: 2, Code: "AAPL", Name: "Apple Inc.", Kind: entity.KindStock, IsActive: true, SortKey: 2},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"code":"SPY","name":"S&P 500","kind":"index","display_code":"SPX"},
				{"code":"AAPL","name":"Apple Inc.","kind":"stock"}]`,
		},
		{
			name:         "success: kind filter is passed through",
			url:          "/symbols?kind=crypto",
			expectedKind: "crypto",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return []entity.Symbol{{ID: 1, Code: "BTC", Name: "Bitcoin", Kind: entity.KindCrypto, IsActive: true}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"code":"BTC","name":"Bitcoin","kind":"crypto"}]`,
		},
		{
			name: "success: returns empty list when no symbols",
			url:  "/symbols",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return []entity.Symbol{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:         "failure: invalid kind",
			url:          "/symbols?kind=bond",
			expectedKind: "bond",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return nil, fmt.Errorf("%w: %q", usecase.ErrInvalidKind, kind)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid symbol kind: \"bond\""}`,
		},
		{
			name: "failure: usecase returns error",
			url:  "/symbols",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"database connection failed"}`,
		},
		{
			name: "success: returns nil from usecase",
			url:  "/symbols",
			mockListActiveFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockUC := &mockSymbolUsecase{
				ListActiveSymbolsFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
					assert.Equal(t, tt.expectedKind, kind)
					return tt.mockListActiveFunc(ctx, kind)
				},
			}
			handler := NewSymbolHandler(mockUC)

			router := gin.New()
			router.GET("/symbols", handler.List)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestSymbolHandler_List_DTOConversion は内部フィールドがレスポンスに公開されないことを検証します。
func TestSymbolHandler_List_DTOConversion(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	mockUC := &mockSymbolUsecase{
		ListActiveSymbolsFunc: func(ctx context.Context, kind string) ([]entity.Symbol, error) {
			return []entity.Symbol{
				{
					ID:       999,
					Code:     "TEST",
					Name:     "Test Company",
					Kind:     entity.KindStock,
					IsActive: true,
					SortKey:  100,
				},
			}, nil
		},
	}
	handler := NewSymbolHandler(mockUC)

	router := gin.New()
	router.GET("/symbols", handler.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/symbols", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"code":"TEST","name":"Test Company","kind":"stock"}]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "999")
	assert.NotContains(t, w.Body.String(), "display_code")
	assert.NotContains(t, w.Body.String(), "is_active")
	assert.NotContains(t, w.Body.String(), "sort_key")
}
