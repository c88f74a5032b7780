package gateway

import (
	"context"
	"fmt"
	"log"

	"github.com/plutov/paypal/v4"
	"landadmin.com/internal/config"
	"landadmin.com/internal/domain"
)

// PayPalGateway implements domain.PaymentGateway against the PayPal Orders API.
type PayPalGateway struct {
	client    *paypal.Client
	returnURL string
	cancelURL string
}

func NewPayPalGateway(cfg config.PayPalConfig, baseURL string) (*PayPalGateway, error) {
	apiBase := paypal.APIBaseSandBox
	if cfg.Mode == "live" {
		apiBase = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal client: %w", err)
	}

	return &PayPalGateway{
		client:    client,
		returnURL: baseURL + "/api/payment/success",
		cancelURL: baseURL + "/api/payment/cancel",
	}, nil
}

// CreateSale creates an order for a single line item and returns the
// gateway id plus the approval redirect link.
func (g *PayPalGateway) CreateSale(ctx context.Context, amount float64, currency, description string) (*domain.GatewaySale, error) {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal auth failed: %w", err)
	}

	value := fmt.Sprintf("%.2f", amount)
	units := []paypal.PurchaseUnitRequest{
		{
			Description: description,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    value,
				Breakdown: &paypal.PurchaseUnitAmountBreakdown{
					ItemTotal: &paypal.Money{Currency: currency, Value: value},
				},
			},
			Items: []paypal.Item{
				{
					Name:       "Land Tax Payment",
					SKU:        "TAX001",
					UnitAmount: &paypal.Money{Currency: currency, Value: value},
					Quantity:   "1",
				},
			},
		},
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, &paypal.ApplicationContext{
		ReturnURL: g.returnURL,
		CancelURL: g.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("paypal order creation failed: %w", err)
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" || link.Rel == "approval_url" {
			approvalURL = link.Href
			break
		}
	}
	if approvalURL == "" {
		return nil, fmt.Errorf("no approval URL found in paypal response")
	}

	log.Printf("PayPal: created order %s (%s %s)", order.ID, value, currency)
	return &domain.GatewaySale{ID: order.ID, ApprovalURL: approvalURL}, nil
}
