package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Pick is the model's view on a single code.
type Pick struct {
	Code   string `json:"code"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// Commentary is the structured narrative the prompt asks for.
type Commentary struct {
	Summary string   `json:"summary"`
	Picks   []Pick   `json:"picks"`
	Risks   []string `json:"risks"`
}

// parseCommentary decodes the model output, repairing broken JSON first.
// Text that still is not a JSON object becomes a summary-only commentary.
func parseCommentary(raw string) Commentary {
	s := stripFence(raw)
	var c Commentary
	if err := json.Unmarshal([]byte(s), &c); err == nil && c.Summary != "" {
		return c
	}
	if repaired, err := jsonrepair.JSONRepair(s); err == nil {
		c = Commentary{}
		if err := json.Unmarshal([]byte(repaired), &c); err == nil && (c.Summary != "" || len(c.Picks) > 0) {
			return c
		}
	}
	return Commentary{Summary: strings.TrimSpace(raw)}
}

// stripFence removes a ```json ... ``` wrapper.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Text renders the commentary as plain lines.
func (c Commentary) Text() string {
	var sb strings.Builder
	sb.WriteString(c.Summary)
	if len(c.Picks) > 0 {
		sb.WriteString("\n\n重點個股:")
		for _, p := range c.Picks {
			fmt.Fprintf(&sb, "\n- %s %s: %s", p.Code, p.Action, p.Reason)
		}
	}
	if len(c.Risks) > 0 {
		sb.WriteString("\n\n風險提示:")
		for _, r := range c.Risks {
			sb.WriteString("\n- " + r)
		}
	}
	return sb.String()
}
