// Package roster maps free-text mentions of committee members to canonical
// member IDs. Alias lists are ordered: the first configured alias that appears
// in the text wins, so list order is the tie-break when surnames collide.
package roster

import "strings"

// Member is a committee member identity. Aliases must be lowercase; they are
// matched by substring containment against lowercased input.
type Member struct {
	ID       string
	FullName string
	Aliases  []string
}

// Roster holds the current committee plus former members who still appear in
// older documents. Former members are only consulted after every current
// member has missed, so a shared surname resolves to the sitting member.
type Roster struct {
	Members []Member
	Former  []Member
}

// Resolve returns the member ID whose alias first appears in text, or ""
// when no alias matches. Empty or whitespace-only input resolves to "".
func (r Roster) Resolve(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t := strings.ToLower(text)
	if id := matchIn(r.Members, t); id != "" {
		return id
	}
	return matchIn(r.Former, t)
}

func matchIn(members []Member, lower string) string {
	for _, m := range members {
		for _, a := range m.Aliases {
			if strings.Contains(lower, a) {
				return m.ID
			}
		}
	}
	return ""
}

// DisplayName returns the full name for a member ID, or a placeholder for
// unattributed entries.
func (r Roster) DisplayName(id string) string {
	for _, m := range r.Members {
		if m.ID == id {
			return m.FullName
		}
	}
	for _, m := range r.Former {
		if m.ID == id {
			return m.FullName
		}
	}
	return "Unknown Committee Member"
}

// FullNames returns every configured full name, current members first. The
// minutes parser enumerates these in its segmentation pattern.
func (r Roster) FullNames() []string {
	out := make([]string, 0, len(r.Members)+len(r.Former))
	for _, m := range r.Members {
		out = append(out, m.FullName)
	}
	for _, m := range r.Former {
		out = append(out, m.FullName)
	}
	return out
}
