package narrative

import (
	"context"
	"fmt"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
)

// Result is one model's answer. Err holds a display string when the call
// failed; Commentary is then empty.
type Result struct {
	Model      string     `json:"model"`
	Commentary Commentary `json:"commentary"`
	Err        string     `json:"error,omitempty"`
}

// Text returns the commentary, or the error string.
func (r Result) Text() string {
	if r.Err != "" {
		return r.Err
	}
	return r.Commentary.Text()
}

// Narrator asks one or two models for commentary on an indicator table.
type Narrator struct {
	gen    Generator
	models []string
}

// NewNarrator creates a Narrator. The first model is the primary one; a
// second enables Compare.
func NewNarrator(gen Generator, models ...string) *Narrator {
	return &Narrator{gen: gen, models: models}
}

// Models returns the configured model identifiers.
func (n *Narrator) Models() []string { return n.models }

// Analyze runs the primary model.
func (n *Narrator) Analyze(ctx context.Context, table string) Result {
	if len(n.models) == 0 {
		return Result{Err: "AI 分析失敗: 未設定模型"}
	}
	return n.run(ctx, n.models[0], table)
}

// Compare runs every configured model on the same table, in order. A
// failing model does not affect the others.
func (n *Narrator) Compare(ctx context.Context, table string) []Result {
	out := make([]Result, 0, len(n.models))
	for _, m := range n.models {
		out = append(out, n.run(ctx, m, table))
	}
	return out
}

func (n *Narrator) run(ctx context.Context, model, table string) Result {
	raw, err := n.gen.Generate(ctx, model, BuildPrompt(table))
	if err != nil {
		metrics.NarrativeRequests.WithLabelValues(model, "error").Inc()
		logger.Warn("narrative failed", logger.String("model", model), logger.ErrorField(err))
		return Result{Model: model, Err: fmt.Sprintf("AI 分析失敗: %v", err)}
	}
	metrics.NarrativeRequests.WithLabelValues(model, "ok").Inc()
	return Result{Model: model, Commentary: parseCommentary(raw)}
}
