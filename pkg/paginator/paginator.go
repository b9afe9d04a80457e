// Package paginator splits an ordered slice into fixed-size pages.
//
// Out-of-range page numbers are clamped rather than rejected: anything
// below 1 yields the first page and anything past the end yields the last
// page. An empty input still has one (empty) page.
package paginator

import "strconv"

type Page[T any] struct {
	Items       []T  `json:"object_list"`
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	Count       int  `json:"count"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate returns page pageNumber (1-based) of items. pageSize must be positive.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	if pageSize <= 0 {
		panic("paginator: pageSize must be positive")
	}

	count := len(items)
	numPages := NumPages(count, pageSize)

	number := pageNumber
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * pageSize
	end := min(start+pageSize, count)

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		PageSize:    pageSize,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

// NumPages is ceil(count/pageSize), but never less than 1.
func NumPages(count, pageSize int) int {
	if count == 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ParsePage reads a "page" query value. Empty or malformed input means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
