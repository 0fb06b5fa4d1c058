package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-warehouse-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedger struct {
	products     []model.Product
	transactions []model.Transaction
	err          error
}

func (f *fakeLedger) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeLedger) ListTransactions(context.Context) ([]model.Transaction, error) {
	return f.transactions, f.err
}

type stubGenerator struct {
	answer      string
	err         error
	instruction string
	query       string
}

func (s *stubGenerator) Generate(_ context.Context, instruction, query string) (string, error) {
	s.instruction = instruction
	s.query = query
	return s.answer, s.err
}

func sampleLedger() *fakeLedger {
	return &fakeLedger{
		products: []model.Product{{
			ID: "p1", Code: "LAP-DELL-01", Name: "Dell XPS 13", Quantity: 5, InitialQuantity: 50,
			ExpDate: "2029-01-01", Supplier: "Dell Vietnam", UnitPrice: decimal.NewFromInt(25000000),
		}},
		transactions: []model.Transaction{{
			ID: "t1", ProductID: "p1", ProductName: "Dell XPS 13", Type: model.TxExport, Quantity: 45,
			Date: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), Partner: "IT Department",
		}},
	}
}

func TestAsk_NotConfigured(t *testing.T) {
	b := NewBridge(sampleLedger(), nil, time.Second, zap.NewNop())
	assert.Equal(t, FallbackNotConfigured, b.Ask(context.Background(), "how many laptops?"))
}

func TestAsk_ReturnsGeneratedText(t *testing.T) {
	gen := &stubGenerator{answer: "You have 5 laptops."}
	b := NewBridge(sampleLedger(), gen, time.Second, zap.NewNop())

	got := b.Ask(context.Background(), "how many laptops?")
	assert.Equal(t, "You have 5 laptops.", got)
	assert.Equal(t, "how many laptops?", gen.query)
	assert.Contains(t, gen.instruction, `"code":"LAP-DELL-01"`)
	assert.Contains(t, gen.instruction, `"partner":"IT Department"`)
	assert.Contains(t, gen.instruction, "Total products: 1.")
}

func TestAsk_FailuresFallBack(t *testing.T) {
	t.Run("generator error", func(t *testing.T) {
		b := NewBridge(sampleLedger(), &stubGenerator{err: errors.New("boom")}, time.Second, zap.NewNop())
		assert.Equal(t, FallbackUnavailable, b.Ask(context.Background(), "q"))
	})
	t.Run("ledger error", func(t *testing.T) {
		b := NewBridge(&fakeLedger{err: errors.New("store down")}, &stubGenerator{answer: "x"}, time.Second, zap.NewNop())
		assert.Equal(t, FallbackUnavailable, b.Ask(context.Background(), "q"))
	})
}

func TestAsk_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	b := NewBridge(sampleLedger(), NewGeminiClient("key", "gemini-test", srv.URL), 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	assert.Equal(t, FallbackUnavailable, b.Ask(context.Background(), "q"))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewSnapshot_LimitsTransactions(t *testing.T) {
	var txs []model.Transaction
	for i := 0; i < 15; i++ {
		txs = append(txs, model.Transaction{ProductName: fmt.Sprintf("item-%d", i), Type: model.TxImport, Quantity: i})
	}
	snap := NewSnapshot(nil, txs)
	require.Len(t, snap.RecentTransactions, RecentTransactionLimit)
	assert.Equal(t, "item-0", snap.RecentTransactions[0].Item)
	assert.Empty(t, snap.Products)
}

func TestGeminiClient_Generate(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient("secret", "gemini-test", srv.URL+"/")
	got, err := client.Generate(context.Background(), "be brief", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", got)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "be brief", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "hi", captured.Contents[0].Parts[0].Text)
}

func TestGeminiClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, "API key not valid"},
		{"bare status", http.StatusInternalServerError, `oops`, "500"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, "empty candidates"},
		{"no text", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`, "empty text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiClient("k", "m", srv.URL).Generate(context.Background(), "s", "q")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %v", err)
		})
	}
}
