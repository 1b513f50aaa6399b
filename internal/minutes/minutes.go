// Package minutes splits a committee-minutes document into individually
// attributed vote rationales. Post-2024 minutes carry a vote breakdown
// ("N members (A, B, C) voted in favour ...") followed by "Full Name: ..."
// rationale paragraphs; both are recovered with fixed patterns built from the
// configured roster.
package minutes

import (
	"regexp"
	"strings"

	"tonetracker/internal/roster"
)

const (
	// VoteUnknown is assigned when a speaker appears in neither vote group.
	VoteUnknown = "unknown"

	minStatement = 30
	maxStatement = 2000
)

// Rationale is one member's attributed statement with their recorded vote.
type Rationale struct {
	SpeakerID string
	Name      string
	Vote      string
	Statement string
}

// VoteGroup pairs a vote-breakdown pattern with the vote it implies. The
// pattern's first capture group must be the parenthetical name list.
type VoteGroup struct {
	Pattern *regexp.Regexp
	Vote    string
}

// DefaultVoteGroups covers the two-way splits seen in recent minutes. The
// affirmative group is listed first and checked first: a name contained in
// both lists keeps the affirmative vote. A three-way split vote would land a
// third group in neither pattern and score unknown.
func DefaultVoteGroups() []VoteGroup {
	return []VoteGroup{
		{
			Pattern: regexp.MustCompile(`(?i)(?:one|two|three|four|five|six|seven|eight|nine)\s+members?\s*\(([^)]+)\)\s*(?:voted in favour|voted in favor|preferred to maintain)`),
			Vote:    "hold",
		},
		{
			Pattern: regexp.MustCompile(`(?i)(?:one|two|three|four|five|six|seven|eight|nine)\s+members?\s*\(([^)]+)\)\s*(?:voted against|preferred to reduce|preferring)`),
			Vote:    "cut",
		},
	}
}

// Parser extracts per-member rationales using a roster-derived segmentation
// pattern. The roster's full names are enumerated explicitly so that a
// surname mentioned mid-statement does not split the statement; only
// "Full Name:" at a line start terminates a segment.
type Parser struct {
	roster   roster.Roster
	groups   []VoteGroup
	nameHead *regexp.Regexp
}

func NewParser(r roster.Roster, groups []VoteGroup) *Parser {
	return &Parser{
		roster:   r,
		groups:   groups,
		nameHead: regexp.MustCompile(`(?i)(?:^|\n\s*)(` + namesAlternation(r.FullNames()) + `)\s*:`),
	}
}

// namesAlternation builds the full-name alternation, with dots optional so
// "Catherine L. Mann" also matches "Catherine L Mann".
func namesAlternation(names []string) string {
	pats := make([]string, 0, len(names))
	for _, n := range names {
		p := regexp.QuoteMeta(n)
		p = strings.ReplaceAll(p, `\.`, `\.?`)
		pats = append(pats, p)
	}
	return strings.Join(pats, "|")
}

// ExtractRationales returns rationales in document order. Segments that
// resolve to no roster member or fall under the minimum statement length are
// discarded; statements are truncated to a bounded stored length.
func (p *Parser) ExtractRationales(text string) []Rationale {
	groupNames := make([][]string, len(p.groups))
	for i, g := range p.groups {
		groupNames[i] = captureNames(g.Pattern, text)
	}

	heads := p.nameHead.FindAllStringSubmatchIndex(text, -1)
	out := make([]Rationale, 0, len(heads))
	for i, m := range heads {
		name := strings.TrimSpace(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		statement := collapseSpace(text[start:end])
		if len(statement) < minStatement {
			continue
		}
		id := p.roster.Resolve(name)
		if id == "" {
			continue
		}
		if len(statement) > maxStatement {
			statement = statement[:maxStatement]
		}
		out = append(out, Rationale{
			SpeakerID: id,
			Name:      name,
			Vote:      p.vote(name, groupNames),
			Statement: statement,
		})
	}
	return out
}

// vote returns the vote of the first group whose name list contains the
// captured name (either direction of containment, case-insensitive), or
// unknown when no group lists the name.
func (p *Parser) vote(name string, groupNames [][]string) string {
	ln := strings.ToLower(name)
	for i, names := range groupNames {
		for _, raw := range names {
			lr := strings.ToLower(raw)
			if strings.Contains(lr, ln) || strings.Contains(ln, lr) {
				return p.groups[i].Vote
			}
		}
	}
	return VoteUnknown
}

func captureNames(re *regexp.Regexp, text string) []string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := strings.TrimSpace(p); n != "" {
			names = append(names, n)
		}
	}
	return names
}

var reSpace = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}
