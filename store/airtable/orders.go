package airtable

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ronautumn/hhnyc-api/models"
)

const (
	fOrderRef       = "Order ID"
	fCustomerName   = "Customer Name"
	fEmail          = "Email"
	fPhone          = "Phone"
	fItems          = "Items"
	fDeliveryMethod = "Delivery Method"
	fBorough        = "Borough"
	fAddress        = "Address"
	fCity           = "City"
	fState          = "State"
	fZipCode        = "Zip Code"
	fDeliveryDate   = "Delivery Date"
	fSubtotal       = "Subtotal"
	fFee            = "Fee"
	fTotal          = "Total"
	fOrderStatus    = "Status"
	fCreatedAt      = "Created At"
)

func orderFields(o models.Order) map[string]any {
	fields := map[string]any{
		fOrderRef:       o.OrderRef,
		fCustomerName:   o.CustomerName,
		fEmail:          o.Email,
		fPhone:          o.Phone,
		fDeliveryMethod: o.DeliveryMethod,
		fAddress:        o.Address,
		fZipCode:        o.ZipCode,
		fSubtotal:       o.Subtotal,
		fFee:            o.Fee,
		fTotal:          o.Total,
		fOrderStatus:    string(o.Status),
		fCreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	switch o.DeliveryMethod {
	case models.MethodDelivery:
		fields[fBorough] = o.Borough
		fields[fDeliveryDate] = o.DeliveryDate
	case models.MethodShipping:
		fields[fCity] = o.City
		fields[fState] = o.State
	}
	if data, err := json.Marshal(o.Items); err == nil {
		fields[fItems] = string(data)
	}
	return fields
}

func orderFromRecord(r record) models.Order {
	o := models.Order{
		OrderRef:       fieldString(r.Fields, fOrderRef),
		CustomerName:   fieldString(r.Fields, fCustomerName),
		Email:          fieldString(r.Fields, fEmail),
		Phone:          fieldString(r.Fields, fPhone),
		DeliveryMethod: fieldString(r.Fields, fDeliveryMethod),
		Borough:        fieldString(r.Fields, fBorough),
		Address:        fieldString(r.Fields, fAddress),
		City:           fieldString(r.Fields, fCity),
		State:          fieldString(r.Fields, fState),
		ZipCode:        fieldString(r.Fields, fZipCode),
		DeliveryDate:   fieldString(r.Fields, fDeliveryDate),
		Subtotal:       fieldFloat(r.Fields, fSubtotal),
		Fee:            fieldFloat(r.Fields, fFee),
		Total:          fieldFloat(r.Fields, fTotal),
		Status:         models.OrderStatus(fieldString(r.Fields, fOrderStatus)),
	}
	if raw := fieldString(r.Fields, fItems); raw != "" {
		_ = json.Unmarshal([]byte(raw), &o.Items)
	}
	if raw := fieldString(r.Fields, fCreatedAt); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			o.CreatedAt = t
		}
	}
	return o
}

func (c *Client) ListRemoteOrders(ctx context.Context) ([]models.Order, error) {
	records, err := c.listAll(ctx, ordersTable)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, orderFromRecord(r))
	}
	return orders, nil
}

// CreateOrder archives an order in the remote Orders table.
func (c *Client) CreateOrder(ctx context.Context, o *models.Order) error {
	_, err := c.createRecord(ctx, ordersTable, orderFields(*o))
	return err
}
