package pdfdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePageRange expands a 1-based page selection like "1,3-5" into
// zero-based page indices, in the order written, duplicates preserved.
// pageCount bounds the selection; pass 0 to skip the upper-bound check.
// An empty selection means every page.
func ParsePageRange(sel string, pageCount int) ([]int, error) {
	sel = strings.TrimSpace(sel)

	if sel == "" {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i
		}
		return pages, nil
	}

	var pages []int

	for _, tok := range strings.Split(sel, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("page selection %q: empty entry", sel)
		}

		lo, hi := tok, tok
		if i := strings.Index(tok, "-"); i >= 0 {
			lo, hi = tok[:i], tok[i+1:]
		}

		from, err := parsePageNum(lo, pageCount)
		if err != nil {
			return nil, fmt.Errorf("page selection %q: %w", sel, err)
		}
		to, err := parsePageNum(hi, pageCount)
		if err != nil {
			return nil, fmt.Errorf("page selection %q: %w", sel, err)
		}
		if to < from {
			return nil, fmt.Errorf("page selection %q: descending range %s", sel, tok)
		}

		for p := from; p <= to; p++ {
			pages = append(pages, p-1)
		}
	}

	return pages, nil
}

func parsePageNum(s string, pageCount int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad page number %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("page numbers start at 1, got %d", n)
	}
	if pageCount > 0 && n > pageCount {
		return 0, fmt.Errorf("page %d out of range (document has %d)", n, pageCount)
	}
	return n, nil
}

// pageSelector renders zero-based indices as the 1-based page selection
// strings the file-level operations expect.
func pageSelector(pages []int) []string {
	if len(pages) == 0 {
		return nil
	}
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p + 1)
	}
	return sel
}
