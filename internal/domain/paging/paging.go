// Package paging provides generic windowing over listed and ranked result
// sets.
package paging

// Page holds one window of items plus the numbers callers need to render
// pagination.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Pages int
}

// Window slices items to the requested page. Page numbering starts at 1;
// Pages is ceil(total/limit), or 0 when there is nothing to page. A page
// past the end yields an empty Items slice rather than an error, so the
// caller never has to pre-validate the page number against the total.
func Window[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page[T]{
		Items: items[start:end],
		Total: total,
		Page:  page,
		Pages: pages,
	}
}
