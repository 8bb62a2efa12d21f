package blogger

// Blog is the subset of the Blogger v3 blog resource this tool reads.
type Blog struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Post is one blog entry from the posts listing. Content carries the post's
// raw HTML.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// PostList is one page of the posts listing. NextPageToken is empty on the
// final page; Items being absent entirely marks a malformed response.
type PostList struct {
	Items         []Post `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}
