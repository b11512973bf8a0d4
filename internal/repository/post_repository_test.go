package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		raw  string
		want SortKey
	}{
		{"newest", SortNewest},
		{"oldest", SortOldest},
		{"title_asc", SortTitleAsc},
		{"title_desc", SortTitleDesc},
		{" title_desc ", SortTitleDesc},
		{"", SortNewest},
		{"garbage", SortNewest},
		{"TITLE_ASC", SortNewest},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseSortKey(tc.raw), "raw %q", tc.raw)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		key  SortKey
		want string
	}{
		{SortNewest, "created_at DESC, id ASC"},
		{SortOldest, "created_at ASC, id ASC"},
		{SortTitleAsc, "title ASC, id ASC"},
		{SortTitleDesc, "title DESC, id ASC"},
		{SortKey("bogus"), "created_at DESC, id ASC"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.key.orderClause(), "key %q", tc.key)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", "100!%"},
		{"a_b", "a!_b"},
		{"bang!", "bang!!"},
		{"%_!", "!%!_!!"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "input %q", tc.in)
	}
}
