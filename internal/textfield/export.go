package textfield

import "strings"

// Export renders the logical value of the buffer: plain runs verbatim and
// each token's payload once, at its first run.
func (b *Buffer) Export() string {
	var sb strings.Builder
	seen := make(map[string]struct{}, len(b.tokens))
	for _, r := range b.runs {
		if r.token == "" {
			sb.WriteString(decode(r.units))
			continue
		}
		if _, ok := seen[r.token]; ok {
			continue
		}
		seen[r.token] = struct{}{}
		sb.WriteString(b.tokens[r.token].Payload)
	}
	return sb.String()
}
