package checkout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Request is the canonical inbound checkout payload, regardless of whether
// the storefront posted JSON or an urlencoded form.
type Request struct {
	OrderID       string
	Amount        string
	Currency      string
	CustomerEmail string
	CustomerName  string
}

// ValidationError marks input the caller can fix; handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// jsonScalar accepts a JSON string or number, since storefronts send order
// ids and amounts in either shape.
type jsonScalar string

func (s *jsonScalar) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = jsonScalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = jsonScalar(num.String())
		return nil
	}
	return fmt.Errorf("value %s is neither a string nor a number", string(b))
}

type jsonRequest struct {
	OrderID       jsonScalar `json:"order_id"`
	Amount        jsonScalar `json:"amount"`
	Currency      string     `json:"currency"`
	CustomerEmail string     `json:"customer_email"`
	CustomerName  string     `json:"customer_name"`
}

// ParseRequest reads the inbound body, selecting the parser by Content-Type.
func ParseRequest(c *fiber.Ctx) (Request, error) {
	ctype := c.Get(fiber.HeaderContentType)
	if strings.HasPrefix(ctype, fiber.MIMEApplicationJSON) {
		var jr jsonRequest
		if err := json.Unmarshal(c.Body(), &jr); err != nil {
			return Request{}, &ValidationError{Msg: "request body is not valid JSON"}
		}
		return Request{
			OrderID:       string(jr.OrderID),
			Amount:        string(jr.Amount),
			Currency:      jr.Currency,
			CustomerEmail: jr.CustomerEmail,
			CustomerName:  jr.CustomerName,
		}, nil
	}

	return Request{
		OrderID:       c.FormValue("order_id"),
		Amount:        c.FormValue("amount"),
		Currency:      c.FormValue("currency"),
		CustomerEmail: c.FormValue("customer_email"),
		CustomerName:  c.FormValue("customer_name"),
	}, nil
}

func (r Request) validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return &ValidationError{Msg: "order_id is required"}
	}
	if strings.TrimSpace(r.Amount) == "" {
		return &ValidationError{Msg: "amount is required"}
	}
	return nil
}
