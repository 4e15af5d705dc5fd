package catalog

// Product is a catalog entry that passed ingestion: it has at least one image
// and a positive price.
type Product struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Description  string   `json:"description,omitempty"`
	CategoryID   int      `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Images       []string `json:"images"`
}

// Category as returned by the catalog API.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

// RawProduct is the upstream product record before ingestion.
type RawProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
}

// ProductInput is the body of product create/update calls.
type ProductInput struct {
	Title       string   `json:"title,omitempty"`
	Price       int      `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	CategoryID  int      `json:"categoryId,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// CategoryInput is the body of category create/update calls.
type CategoryInput struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// User is a catalog API account.
type User struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// UserInput is the body of user create/update calls. Empty fields are omitted
// so that updates are partial.
type UserInput struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Tokens is the login response.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
