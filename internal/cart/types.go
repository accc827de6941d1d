package cart

// Line is a server-computed cart row. Subtotal comes from the backend and is
// trusted as-is; the client never recomputes it from price and quantity.
type Line struct {
	ArticleID   int64   `json:"articleId"`
	ArticleName string  `json:"articleName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type Cart struct {
	Items []Line  `json:"items"`
	Total float64 `json:"total"`
}

func Empty() Cart {
	return Cart{Items: []Line{}, Total: 0}
}
