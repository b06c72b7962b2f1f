package woo

// Order statuses this relay sets after a payment event.
const (
	StatusProcessing = "processing"
	StatusFailed     = "failed"
)

// Meta keys stored on the order so shop staff can trace the payment.
const (
	metaPaymentStatus = "_stripe_payment_status"
	metaPaymentIntent = "_stripe_payment_intent"
)

type MetaData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type OrderUpdate struct {
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	MetaData      []MetaData `json:"meta_data"`
}
