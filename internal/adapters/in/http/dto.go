package http

import (
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/services"
)

// ListOrdersParams are the filter bar values of GET /api/v1/orders.
// From and To are calendar days (2006-01-02); To includes its whole day.
type ListOrdersParams struct {
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	Search    string `query:"q"`
	MinAmount string `query:"minAmount"`
	Carrier   string `query:"carrier"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// FilterState converts validated params into the filter engine's input.
func (p ListOrdersParams) FilterState() services.FilterState {
	return services.FilterState{
		Status:     p.Status,
		Priority:   p.Priority,
		SearchTerm: p.Search,
		MinAmount:  p.MinAmount,
		Carrier:    p.Carrier,
		DateRange: services.DateRange{
			Start: parseDay(p.From),
			End:   parseDay(p.To),
		},
	}
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}

type TransitionRequest struct {
	Status    string `json:"status" validate:"required"`
	Note      string `json:"note" validate:"max=500"`
	UpdatedBy string `json:"updatedBy" validate:"max=128"`
	Confirm   bool   `json:"confirm"`
}

type TrackingRequest struct {
	Code      string `json:"code" validate:"required,max=128"`
	Carrier   string `json:"carrier" validate:"required,max=64"`
	Service   string `json:"service"`
	Weight    string `json:"weight"`
	Notes     string `json:"notes" validate:"max=500"`
	UpdatedBy string `json:"updatedBy" validate:"max=128"`
}

// BulkRequest selects orders for one bulk operation. Status is required for
// update_status and Priority for update_priority.
type BulkRequest struct {
	Operation string   `json:"operation" validate:"required,oneof=update_status update_priority"`
	OrderIDs  []string `json:"orderIds" validate:"required,min=1,dive,required"`
	Status    string   `json:"status"`
	Priority  string   `json:"priority"`
	UpdatedBy string   `json:"updatedBy" validate:"max=128"`
	Confirm   bool     `json:"confirm"`
}

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type OrderResponse struct {
	ID              string            `json:"id"`
	OrderID         string            `json:"orderId"`
	Status          string            `json:"status"`
	AllowedTargets  []string          `json:"allowedTargets"`
	Priority        string            `json:"priority"`
	EffectiveTotal  string            `json:"effectiveTotal"`
	Customer        CustomerResponse  `json:"customer"`
	Items           []ItemResponse    `json:"items"`
	ShippingAddress *AddressResponse  `json:"shippingAddress,omitempty"`
	Tracking        *TrackingResponse `json:"tracking,omitempty"`
	StatusHistory   []HistoryResponse `json:"statusHistory"`
	AdminNotes      string            `json:"adminNotes,omitempty"`
	CreatedAt       *time.Time        `json:"createdAt,omitempty"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type ItemResponse struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type TrackingResponse struct {
	Code              string     `json:"code"`
	Carrier           string     `json:"carrier"`
	URL               string     `json:"url,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type HistoryResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
	UpdatedBy string            `json:"updatedBy,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type BulkResponse struct {
	RunID        string               `json:"runId"`
	SuccessCount int                  `json:"successCount"`
	FailureCount int                  `json:"failureCount"`
	Results      []BulkResultResponse `json:"results"`
}

type BulkResultResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type RefreshResponse struct {
	Loaded int `json:"loaded"`
}

type CarriersResponse struct {
	Carriers []string `json:"carriers"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	targets := o.Status().AllowedTargets()
	allowed := make([]string, 0, len(targets))
	for _, t := range targets {
		allowed = append(allowed, t.String())
	}

	c := o.Customer()
	resp := OrderResponse{
		ID:             o.ID(),
		OrderID:        o.OrderID(),
		Status:         o.Status().String(),
		AllowedTargets: allowed,
		Priority:       o.Priority().String(),
		EffectiveTotal: o.EffectiveTotal().String(),
		Customer:       CustomerResponse{Name: c.Name, Email: c.Email, Phone: c.Phone},
		Items:          make([]ItemResponse, 0, len(o.Items())),
		StatusHistory:  make([]HistoryResponse, 0, len(o.StatusHistory())),
		AdminNotes:     o.AdminNotes(),
	}

	for _, it := range o.Items() {
		resp.Items = append(resp.Items, ItemResponse{
			Name: it.Name, Price: it.Price.String(), Quantity: it.Quantity, Image: it.Image,
		})
	}
	if a := o.ShippingAddress(); a != nil {
		resp.ShippingAddress = &AddressResponse{
			Line1: a.Line1, Line2: a.Line2, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		}
	}
	if t := o.Tracking(); t != nil {
		resp.Tracking = &TrackingResponse{
			Code: t.Code, Carrier: t.Carrier, URL: t.URL, EstimatedDelivery: t.EstimatedDelivery,
		}
	}
	for _, h := range o.StatusHistory() {
		resp.StatusHistory = append(resp.StatusHistory, HistoryResponse{
			Status: h.StatusName(), Timestamp: h.Timestamp, Note: h.Note, UpdatedBy: h.UpdatedBy, Metadata: h.Metadata,
		})
	}
	if at, ok := o.CreatedAt(); ok {
		resp.CreatedAt = &at
	}

	return resp
}

func toBulkResponse(r commands.BulkResult) BulkResponse {
	resp := BulkResponse{
		RunID:        r.RunID,
		SuccessCount: r.SuccessCount,
		FailureCount: r.FailureCount,
		Results:      make([]BulkResultResponse, 0, len(r.Results)),
	}
	for _, item := range r.Results {
		out := BulkResultResponse{ID: item.ID, Success: item.Success}
		if item.Err != nil {
			out.Error = item.Err.Error()
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}
