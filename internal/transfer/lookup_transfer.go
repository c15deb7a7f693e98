package transfer

type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type ImageResult struct {
	URL       string `json:"url"`
	StoredURL string `json:"stored_url,omitempty"`
}

type QuotableResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type ZenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

type UnsplashPhoto struct {
	ID   string `json:"id"`
	URLs struct {
		Raw     string `json:"raw"`
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
}

type UnsplashErrorResponse struct {
	Errors []string `json:"errors"`
}
