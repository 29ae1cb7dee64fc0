package order

// Cart pricing. The app fee is a small per-unit surcharge on higher-priced
// items; the delivery fee is negotiated after the order is placed and is
// never part of the pre-checkout total.
const (
	AppFeeThreshold = 5.0
	AppFeePerUnit   = 0.0157
)

// CartItem is a transient, client-side line item. Nothing here is
// persisted; quotes are derived from whatever cart the client sends.
type CartItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Quote is the priced view of a cart.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	AppFee   float64 `json:"app_fee"`
	Total    float64 `json:"total"`
}

// QuoteCart prices a cart: subtotal over all items, plus the per-unit app
// fee on items at or above the threshold. A nil or empty cart quotes to
// zeros. The function is pure; requoting the same cart yields the same
// quote.
func QuoteCart(items []CartItem) Quote {
	var q Quote
	for _, item := range items {
		q.Subtotal += item.Price * float64(item.Qty)
		if item.Price >= AppFeeThreshold {
			q.AppFee += AppFeePerUnit * float64(item.Qty)
		}
	}
	q.Total = q.Subtotal + q.AppFee
	return q
}
