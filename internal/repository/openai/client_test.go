package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dermAssist/domain"
	"dermAssist/pkg/config"
	"dermAssist/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gpt-4o-mini",
		VisionModel: "gpt-4o",
	})
	c.Retry = retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Jitter:      0.3,
	}
	return c
}

// completionBody wraps content in the provider's chat-completion envelope.
func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id": "cmpl-test",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func validRanking(n int) string {
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"product_id":      fmt.Sprintf("p%d", i),
			"score":           0.9 - float64(i)*0.05,
			"reason":          "matches detected concerns",
			"step":            "Treatment",
			"selected_vendor": "Sephora",
		})
	}
	out, _ := json.Marshal(map[string]any{"items": items, "confidence": 0.85})
	return string(out)
}

func someCandidates(n int) []domain.CandidateProduct {
	out := make([]domain.CandidateProduct, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.CandidateProduct{
			ID:          fmt.Sprintf("p%d", i),
			Name:        fmt.Sprintf("Product %d", i),
			ProductType: "Treatment",
			PriceUSD:    20,
		})
	}
	return out
}

func TestRerank(t *testing.T) {
	ctx := context.Background()

	t.Run("returns parsed ranking on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Write(completionBody(t, validRanking(8)))
		}))
		defer srv.Close()

		out, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(5)})
		require.NoError(t, err)

		assert.Len(t, out.Items, 8)
		assert.Equal(t, "p0", out.Items[0].ProductID)
		assert.InDelta(t, 0.85, out.Confidence, 1e-9)
	})

	t.Run("request pins temperature zero and json mode", func(t *testing.T) {
		var req chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.Write(completionBody(t, validRanking(8)))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.NoError(t, err)

		assert.Equal(t, 0.0, req.Temperature)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		assert.Equal(t, rerankMaxTokens, req.MaxTokens)
	})

	t.Run("oversized pools are truncated in the request payload", func(t *testing.T) {
		var sent domain.RerankInput
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 2)
			userContent, ok := req.Messages[1].Content.(string)
			require.True(t, ok)
			require.NoError(t, json.Unmarshal([]byte(userContent), &sent))
			w.Write(completionBody(t, validRanking(8)))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(40)})
		require.NoError(t, err)

		assert.Len(t, sent.Candidates, maxCandidates)
	})

	t.Run("rate limiting is retried until success", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write(completionBody(t, validRanking(8)))
		}))
		defer srv.Close()

		out, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.NoError(t, err)

		assert.Equal(t, 3, calls)
		assert.Len(t, out.Items, 8)
	})

	t.Run("persistent server errors exhaust all attempts", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.Error(t, err)

		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("malformed completion content is not retried", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write(completionBody(t, "here are your recommendations: 1. cleanser"))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.Error(t, err)

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, domain.ErrMalformedCompletion)
	})

	t.Run("too few items fails validation without retry", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write(completionBody(t, validRanking(7)))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.Error(t, err)

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, domain.ErrMalformedCompletion)
	})

	t.Run("alias keys from the model are accepted", func(t *testing.T) {
		// same payload under "recommendations" / "overall_confidence"
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(validRanking(8)), &obj))
		aliased, _ := json.Marshal(map[string]any{
			"recommendations":    obj["items"],
			"overall_confidence": obj["confidence"],
		})

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionBody(t, string(aliased)))
		}))
		defer srv.Close()

		out, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.NoError(t, err)

		assert.Len(t, out.Items, 8)
		assert.InDelta(t, 0.85, out.Confidence, 1e-9)
	})

	t.Run("empty choices are reported and not retried", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"id":"cmpl-test","choices":[]}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Rerank(ctx, domain.RerankInput{Candidates: someCandidates(3)})
		require.Error(t, err)

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
	})
}

func TestAnalyzeSkin(t *testing.T) {
	ctx := context.Background()

	t.Run("parses validated traits", func(t *testing.T) {
		content := `{"traits":[{"id":"acne","name":"Acne","severity":"high"}],"summary":"Visible breakouts on the cheeks."}`
		var req chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		out, err := newTestClient(srv.URL).AnalyzeSkin(ctx, []string{"https://cdn.example.com/face.jpg"})
		require.NoError(t, err)

		require.Len(t, out.Traits, 1)
		assert.Equal(t, "acne", out.Traits[0].ID)
		assert.Equal(t, domain.SeverityHigh, out.Traits[0].Severity)
		assert.Equal(t, "gpt-4o", req.Model)
	})

	t.Run("alias trait keys are accepted", func(t *testing.T) {
		content := `{"skin_traits":[{"id":"redness","name":"Redness","severity":"moderate"}],"description":"Mild redness around the nose."}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		out, err := newTestClient(srv.URL).AnalyzeSkin(ctx, []string{"https://cdn.example.com/face.jpg"})
		require.NoError(t, err)

		require.Len(t, out.Traits, 1)
		assert.Equal(t, "redness", out.Traits[0].ID)
		assert.NotEmpty(t, out.Summary)
	})

	t.Run("invalid severity fails validation", func(t *testing.T) {
		content := `{"traits":[{"id":"acne","name":"Acne","severity":"catastrophic"}],"summary":"x"}`
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).AnalyzeSkin(ctx, []string{"https://cdn.example.com/face.jpg"})
		require.Error(t, err)

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, domain.ErrMalformedCompletion)
	})

	t.Run("requires at least one image", func(t *testing.T) {
		_, err := newTestClient("http://unused").AnalyzeSkin(ctx, nil)
		assert.Error(t, err)
	})
}
