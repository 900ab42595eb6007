package watchlist

import "strings"

// DefaultCodes is the watchlist used when nothing has been saved yet.
const DefaultCodes = "2330, 2376, 3034, 2317, 2383, 2027"

// Parse splits a ticker string on ASCII or full-width commas, trims each
// token and drops empty ones. Duplicates keep their first position.
func Parse(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		code := strings.ToUpper(strings.TrimSpace(f))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// Join renders codes the way Parse accepts them.
func Join(codes []string) string {
	return strings.Join(codes, ", ")
}
