package paymentsession

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// OrderIDPlaceholder is substituted by the gateway in the return URL.
const OrderIDPlaceholder = "{order_id}"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report gateway field names in validation errors
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// CustomerDetails identifies the paying customer to the gateway.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id" validate:"required,max=50"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,numeric,min=10,max=15"`
}

// OrderMeta carries redirect settings for the hosted checkout.
type OrderMeta struct {
	ReturnURL string `json:"return_url" validate:"required,url"`
}

// OrderRequest is the order-creation payload sent to the gateway.
type OrderRequest struct {
	OrderID         string          `json:"order_id" validate:"required,max=50"`
	OrderAmount     Money           `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency" validate:"required,iso4217"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       OrderMeta       `json:"order_meta"`
	OrderNote       string          `json:"order_note,omitempty" validate:"max=200"`
}

// Validate checks the payload before it leaves the process.
func (o *OrderRequest) Validate() error {
	if err := getValidator().Struct(o); err != nil {
		return fmt.Errorf("invalid order request: %w", err)
	}
	if !o.OrderAmount.IsPositive() {
		return fmt.Errorf("invalid order request: amount must be positive, got %s", o.OrderAmount.Decimal())
	}
	if !strings.Contains(o.OrderMeta.ReturnURL, OrderIDPlaceholder) {
		return fmt.Errorf("invalid order request: return url must contain %s", OrderIDPlaceholder)
	}
	return nil
}

// OrderTemplate holds the fixed order values used for every session.
type OrderTemplate struct {
	Amount        Money
	CustomerEmail string
	CustomerPhone string
	ReturnURL     string
	Note          string
}

// IDGenerator returns a fresh identifier for the given prefix.
type IDGenerator func(prefix string) (string, error)

const (
	orderIDPrefix    = "order"
	customerIDPrefix = "customer"
)

// NewOrderRequest builds a validated order from the template with freshly
// generated order and customer ids.
func NewOrderRequest(tmpl OrderTemplate, newID IDGenerator) (*OrderRequest, error) {
	orderID, err := newID(orderIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	customerID, err := newID(customerIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customer id: %w", err)
	}

	order := &OrderRequest{
		OrderID:       orderID,
		OrderAmount:   tmpl.Amount,
		OrderCurrency: tmpl.Amount.Currency(),
		CustomerDetails: CustomerDetails{
			CustomerID:    customerID,
			CustomerEmail: tmpl.CustomerEmail,
			CustomerPhone: tmpl.CustomerPhone,
		},
		OrderMeta: OrderMeta{
			ReturnURL: tmpl.ReturnURL,
		},
		OrderNote: tmpl.Note,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}
