package llm

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"fmeca/pkg/schema"
)

// Action block delimiters embedded in copilot responses.
const (
	actionOpen  = "<ACTION>"
	actionClose = "</ACTION>"
)

// ParseActionBlocks extracts directive blocks from a free-text response.
//
// Every non-overlapping <ACTION>...</ACTION> region is parsed, in document
// order, as a JSON object or array of objects. An object qualifies as a
// proposal only when it carries an item or is typed DELETE; each qualifying
// proposal gets a synthetic ID for UI correlation. Malformed payloads are
// dropped without affecting sibling blocks. The returned clean text is the
// input with every region removed and surrounding whitespace trimmed.
//
// Parsing is pure: no dataset is touched.
func ParseActionBlocks(text string) (string, []schema.Proposal) {
	var clean strings.Builder
	var proposals []schema.Proposal

	rest := text
	for {
		open := strings.Index(rest, actionOpen)
		if open < 0 {
			clean.WriteString(rest)
			break
		}
		close := strings.Index(rest[open+len(actionOpen):], actionClose)
		if close < 0 {
			// Unterminated block: keep the remainder as commentary.
			clean.WriteString(rest)
			break
		}

		clean.WriteString(rest[:open])
		payload := rest[open+len(actionOpen) : open+len(actionOpen)+close]
		proposals = append(proposals, parsePayload(payload)...)
		rest = rest[open+len(actionOpen)+close+len(actionClose):]
	}

	return strings.TrimSpace(clean.String()), proposals
}

// parsePayload decodes one block payload into zero or more proposals.
func parsePayload(payload string) []schema.Proposal {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	// Array payloads are split first so one bad element cannot sink its
	// siblings.
	var elements []json.RawMessage
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &elements); err != nil {
			return nil
		}
	} else {
		elements = []json.RawMessage{json.RawMessage(payload)}
	}

	var out []schema.Proposal
	for _, raw := range elements {
		var p schema.Proposal
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if qualified, ok := qualify(p); ok {
			out = append(out, qualified)
		}
	}
	return out
}

// qualify filters out objects that carry neither an item nor a DELETE type,
// and stamps a correlation ID.
func qualify(p schema.Proposal) (schema.Proposal, bool) {
	if p.Item == nil && p.Type != schema.ProposalDelete {
		return schema.Proposal{}, false
	}
	if p.Type == "" {
		p.Type = schema.ProposalAdd
	}
	p.ID = uuid.NewString()
	return p, true
}
