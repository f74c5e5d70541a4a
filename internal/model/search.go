package model

// SearchResult is one raw web-search hit, in the upstream API's native
// ranking order.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
