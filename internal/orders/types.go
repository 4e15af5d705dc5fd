package orders

import "time"

// Order statuses
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// LineItem is a cart line frozen at checkout.
type LineItem struct {
	ProductID int     `dynamodbav:"product_id" json:"product_id"`
	Title     string  `dynamodbav:"title" json:"title"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Price     float64 `dynamodbav:"price" json:"price"`
}

// Order is the item stored in the orders table.
type Order struct {
	OrderID   string            `dynamodbav:"order_id"` // PK
	SessionID string            `dynamodbav:"session_id"`
	Email     string            `dynamodbav:"email"`
	UserID    int               `dynamodbav:"user_id,omitempty"` // set when the shopper was logged in
	Status    string            `dynamodbav:"status"`            // PENDING | PROCESSING | COMPLETED | FAILED
	Amount    float64           `dynamodbav:"amount"`
	Items     []LineItem        `dynamodbav:"items"`
	Metadata  map[string]string `dynamodbav:"metadata,omitempty"` // card_last4, card_name
	CreatedAt time.Time         `dynamodbav:"created_at"`
	UpdatedAt time.Time         `dynamodbav:"updated_at"`
	Attempts  int               `dynamodbav:"attempts,omitempty"`
}

// ItemCount is the total quantity across lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
