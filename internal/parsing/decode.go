package parsing

import "strings"

const (
	// MaxSummaryLines is the number of summary lines joined into the summary.
	MaxSummaryLines = 4
	// MaxSkills caps the decoded skills list.
	MaxSkills = 30
)

func decodeSummary(lines []string) string {
	if len(lines) > MaxSummaryLines {
		lines = lines[:MaxSummaryLines]
	}
	return strings.Join(lines, " ")
}

// decodeSkills flattens comma separated skill lines into trimmed tokens.
func decodeSkills(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		for _, tok := range strings.Split(line, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	if len(tokens) > MaxSkills {
		tokens = tokens[:MaxSkills]
	}
	return tokens
}
