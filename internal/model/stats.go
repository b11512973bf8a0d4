package model

// PostStats aggregates title+content lengths over all posts. A zero value is
// the defined result when no posts exist.
type PostStats struct {
	Count  int     `json:"count"`
	Sum    int     `json:"sum"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}
