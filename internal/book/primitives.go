package book

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ISBN identifies a book. Either 10 digits, or 13 digits written with a
// hyphen after the leading 3-digit prefix.
type ISBN string

// Title is the non-blank title of a book.
type Title string

// NumberOfPages is a page count in [1, 10000].
type NumberOfPages int

// Author is an author's display name.
type Author string

// Borrower is the name of whoever borrowed a book.
type Borrower string

var isbnPattern = regexp.MustCompile(`^(\d{3}-)?\d{10}$`)

func NewISBN(value string) (ISBN, error) {
	if !isbnPattern.MatchString(value) {
		return "", fmt.Errorf("invalid ISBN %q: must be 10 digits, or 13 digits with a hyphen after the first 3", value)
	}
	return ISBN(value), nil
}

func NewTitle(value string) (Title, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("title must not be blank")
	}
	return Title(value), nil
}

func NewNumberOfPages(value int) (NumberOfPages, error) {
	if value < 1 || value > 10000 {
		return 0, fmt.Errorf("number of pages must be between 1 and 10000, got %d", value)
	}
	return NumberOfPages(value), nil
}

// NormalizeAuthors drops empty names, removes duplicates and sorts. The
// result is never nil, so author lists marshal as [] rather than null.
func NormalizeAuthors(authors []Author) []Author {
	seen := make(map[Author]struct{}, len(authors))
	normalized := make([]Author, 0, len(authors))
	for _, a := range authors {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		normalized = append(normalized, a)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })
	return normalized
}
