package validation

// OrderLine is one cart line frozen into an order.
type OrderLine struct {
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

// OrderSnapshot is the cart content submitted at checkout. Amount must equal
// the sum of price*quantity to the cent.
type OrderSnapshot struct {
	Lines  []OrderLine `json:"lines" validate:"required,min=1,dive"`
	Amount float64     `json:"amount" validate:"required,gt=0"`
}

// AddCartItemRequest is the body of POST /cart/items.
type AddCartItemRequest struct {
	ID int `json:"id" validate:"required,gt=0"`
}

// UpdateQuantityRequest is the body of PATCH /cart/items/:id. Zero and
// negative quantities are allowed and remove the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProductForm is the admin product create form. Price is whole units.
type ProductForm struct {
	Title       string   `json:"title" validate:"required"`
	Price       int      `json:"price" validate:"required,gt=0"`
	Description string   `json:"description"`
	CategoryID  int      `json:"category_id" validate:"required,gt=0"`
	Images      []string `json:"images"`
}

// ProductUpdateForm only changes the fields that are set.
type ProductUpdateForm struct {
	Title       string   `json:"title"`
	Price       int      `json:"price" validate:"omitempty,gt=0"`
	Description string   `json:"description"`
	CategoryID  int      `json:"category_id" validate:"omitempty,gt=0"`
	Images      []string `json:"images"`
}

type CategoryForm struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"omitempty,url"`
}

type CategoryUpdateForm struct {
	Name  string `json:"name"`
	Image string `json:"image" validate:"omitempty,url"`
}

type UserForm struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

type UserUpdateForm struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

// CardForm is the simulated payment form. Card data is only checked for shape.
type CardForm struct {
	CardNumber string `json:"card_number" validate:"card_number"`
	CardName   string `json:"card_name" validate:"not_blank"`
	ExpiryDate string `json:"expiry_date" validate:"expiry"`
	CVV        string `json:"cvv" validate:"digits,min=3,max=4"`
	Email      string `json:"email" validate:"required,contains=@"`
}
