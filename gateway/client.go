package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator creates an order on the payment gateway ahead of capture.
// The returned id is the correlation key the client-side widget and the
// verify callback both carry.
type OrderCreator interface {
	CreateOrder(amountPaise int, receipt string) (string, error)
}

// RazorpayClient wraps the Razorpay SDK.
type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{client: razorpay.NewClient(keyID, keySecret)}
}

func (r *RazorpayClient) CreateOrder(amountPaise int, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("gateway order create failed: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway order create returned no id")
	}
	return id, nil
}
