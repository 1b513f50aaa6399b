package corpus

// Index is the membership set used to decide candidate novelty. Every stored
// entry contributes three keys: the literal URL, the short URL hash (covers
// rows stored before the hash field existed, and rows whose stored URL later
// changed query strings), and the (date, first-30-of-title) tuple, which
// catches content relisted under a new URL. Two distinct documents sharing a
// date and a 30-char title prefix collapse into one.
type Index struct {
	keys map[string]struct{}
}

// BuildIndex scans the full corpus once.
func BuildIndex(c Corpus) *Index {
	ix := &Index{keys: make(map[string]struct{}, c.Len()*3)}
	for _, entries := range c {
		for _, e := range entries {
			if e.URL != "" {
				ix.keys[e.URL] = struct{}{}
				ix.keys[URLHash(e.URL)] = struct{}{}
			}
			if e.URLHash != "" {
				ix.keys[e.URLHash] = struct{}{}
			}
			ix.keys[tupleKey(e.Date, e.Title)] = struct{}{}
		}
	}
	return ix
}

// IsDuplicate reports whether any of the three keys is already present.
func (ix *Index) IsDuplicate(url, date, title string) bool {
	if _, ok := ix.keys[url]; ok {
		return true
	}
	if _, ok := ix.keys[URLHash(url)]; ok {
		return true
	}
	if date != "" && title != "" {
		if _, ok := ix.keys[tupleKey(date, title)]; ok {
			return true
		}
	}
	return false
}

// Add registers a newly accepted entry so later candidates in the same run
// dedupe against it.
func (ix *Index) Add(url, date, title string) {
	ix.keys[url] = struct{}{}
	ix.keys[URLHash(url)] = struct{}{}
	ix.keys[tupleKey(date, title)] = struct{}{}
}

// Size is the number of membership keys, for run logging.
func (ix *Index) Size() int {
	return len(ix.keys)
}
