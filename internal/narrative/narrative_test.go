package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k123", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "2330")

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":"},{"text":"\"ok\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("k123", time.Second, nil)
	g.BaseURL = srv.URL
	out, err := g.Generate(context.Background(), "gemini-2.0-flash", BuildPrompt("2330 台積電"))
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
}

func TestGeminiClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("k", time.Second, nil)
	g.BaseURL = srv.URL
	_, err := g.Generate(context.Background(), "m", "p")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient("", time.Second, nil).Generate(context.Background(), "m", "p")
	assert.ErrorContains(t, err, "missing api key")
}

func TestParseCommentary(t *testing.T) {
	t.Run("clean json", func(t *testing.T) {
		c := parseCommentary(`{"summary":"偏多","picks":[{"code":"2330","action":"買進","reason":"量增"}],"risks":["匯率"]}`)
		assert.Equal(t, "偏多", c.Summary)
		require.Len(t, c.Picks, 1)
		assert.Equal(t, "2330", c.Picks[0].Code)
		assert.Equal(t, []string{"匯率"}, c.Risks)
	})
	t.Run("fenced and truncated", func(t *testing.T) {
		c := parseCommentary("```json\n{\"summary\": \"震盪\", \"risks\": [\"外資賣超\"\n```")
		assert.Equal(t, "震盪", c.Summary)
		assert.Equal(t, []string{"外資賣超"}, c.Risks)
	})
	t.Run("trailing comma", func(t *testing.T) {
		c := parseCommentary(`{"summary": "觀望",}`)
		assert.Equal(t, "觀望", c.Summary)
	})
	t.Run("plain text", func(t *testing.T) {
		c := parseCommentary("  大盤偏弱，建議觀望。 ")
		assert.Equal(t, "大盤偏弱，建議觀望。", c.Summary)
		assert.Empty(t, c.Picks)
	})
}

type stubGen struct {
	out  map[string]string
	errs map[string]error
}

func (s stubGen) Generate(_ context.Context, model, prompt string) (string, error) {
	if err := s.errs[model]; err != nil {
		return "", err
	}
	return s.out[model], nil
}

func TestNarrator_Compare(t *testing.T) {
	gen := stubGen{
		out:  map[string]string{"a": `{"summary":"A 看多"}`},
		errs: map[string]error{"b": errors.New("timeout")},
	}
	n := NewNarrator(gen, "a", "b")

	res := n.Compare(context.Background(), "table")
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].Model)
	assert.Equal(t, "A 看多", res[0].Text())
	assert.Equal(t, "b", res[1].Model)
	assert.Equal(t, "AI 分析失敗: timeout", res[1].Text())

	single := n.Analyze(context.Background(), "table")
	assert.Equal(t, "a", single.Model)
	assert.Empty(t, single.Err)
}

func TestNarrator_NoModels(t *testing.T) {
	r := NewNarrator(stubGen{}).Analyze(context.Background(), "t")
	assert.True(t, strings.HasPrefix(r.Err, "AI 分析失敗"))
}

func TestCommentary_Text(t *testing.T) {
	c := Commentary{
		Summary: "偏多",
		Picks:   []Pick{{Code: "2330", Action: "買進", Reason: "突破月線"}},
		Risks:   []string{"量能不足"},
	}
	assert.Equal(t, "偏多\n\n重點個股:\n- 2330 買進: 突破月線\n\n風險提示:\n- 量能不足", c.Text())
}
