// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"errors"
	"strconv"
	"strings"

	"github.com/manaql/manaql-mcp/pkg/cards"
)

// MaxLimit caps the limit query parameter.
const MaxLimit = 1000

// SearchParams are the query parameters of GET /api/v1/cards.
type SearchParams struct {
	Query  string
	Type   string
	Fields []string
	Limit  int
	Offset int
}

// ParseSearchParams decodes and validates raw query parameter values.
func ParseSearchParams(query, cardType, fields, limit, offset string) (*SearchParams, error) {
	p := &SearchParams{
		Query: strings.TrimSpace(query),
		Type:  strings.TrimSpace(cardType),
		Limit: 20,
	}

	if fields != "" {
		for _, f := range strings.Split(fields, ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				p.Fields = append(p.Fields, f)
			}
		}
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return nil, errors.New("limit must be a positive integer")
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}

	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return nil, errors.New("offset must be a non-negative integer")
		}
		p.Offset = n
	}

	return p, nil
}

// Filters converts the parsed parameters into domain search filters.
func (p *SearchParams) Filters() cards.SearchFilters {
	filters := cards.SearchFilters{}
	if p.Type != "" {
		t := cards.ParseCardType(p.Type)
		filters.MainType = &t
	}
	for _, f := range p.Fields {
		filters.Fields = append(filters.Fields, cards.ParseSearchField(f))
	}
	return filters
}

// SearchResponse is the body of GET /api/v1/cards.
type SearchResponse struct {
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Cards  []*cards.Card `json:"cards"`
}

// CountResponse is the body of GET /api/v1/cards/count.
type CountResponse struct {
	Total int64 `json:"total"`
}

// SimilarResponse is the body of GET /api/v1/cards/similar.
type SimilarResponse struct {
	Name  string        `json:"name"`
	Count int           `json:"count"`
	Cards []*cards.Card `json:"cards"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
