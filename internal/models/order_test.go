package models

import (
	"testing"
	"time"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := func() *CreateOrderRequest {
		return &CreateOrderRequest{
			Items: []OrderItemRequest{
				{Pizza: 1, Quantity: 2},
			},
			CustomerInfo: CustomerInfo{
				Name:  "Mario Rossi",
				Phone: "+39 333 1234567",
			},
			OrderType: Pickup,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		wantErr bool
	}{
		{
			name:    "valid pickup request",
			mutate:  func(req *CreateOrderRequest) {},
			wantErr: false,
		},
		{
			name: "valid delivery request",
			mutate: func(req *CreateOrderRequest) {
				req.OrderType = Delivery
				req.CustomerInfo.Address = "Via Roma 1"
			},
			wantErr: false,
		},
		{
			name: "empty cart",
			mutate: func(req *CreateOrderRequest) {
				req.Items = nil
			},
			wantErr: true,
		},
		{
			name: "too many items",
			mutate: func(req *CreateOrderRequest) {
				req.Items = make([]OrderItemRequest, 21)
				for i := range req.Items {
					req.Items[i] = OrderItemRequest{Pizza: 1, Quantity: 1}
				}
			},
			wantErr: true,
		},
		{
			name: "missing pizza id",
			mutate: func(req *CreateOrderRequest) {
				req.Items[0].Pizza = 0
			},
			wantErr: true,
		},
		{
			name: "zero quantity",
			mutate: func(req *CreateOrderRequest) {
				req.Items[0].Quantity = 0
			},
			wantErr: true,
		},
		{
			name: "missing name",
			mutate: func(req *CreateOrderRequest) {
				req.CustomerInfo.Name = ""
			},
			wantErr: true,
		},
		{
			name: "missing phone",
			mutate: func(req *CreateOrderRequest) {
				req.CustomerInfo.Phone = ""
			},
			wantErr: true,
		},
		{
			name: "invalid order type",
			mutate: func(req *CreateOrderRequest) {
				req.OrderType = "drone"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2025, 4, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		sequence int
		want     string
	}{
		{1, "PF20250412001"},
		{42, "PF20250412042"},
		{999, "PF20250412999"},
		{1000, "PF202504121000"},
	}

	for _, tt := range tests {
		if got := FormatOrderNumber(day, tt.sequence); got != tt.want {
			t.Errorf("FormatOrderNumber(%d) = %q, want %q", tt.sequence, got, tt.want)
		}
	}
}

func TestFormatOrderNumberUsesUTCDay(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC the same day; 01:30 in UTC+2 is the
	// previous UTC day.
	loc := time.FixedZone("UTC+2", 2*60*60)
	lateEvening := time.Date(2025, 4, 13, 1, 30, 0, 0, loc)

	if got := FormatOrderNumber(lateEvening, 1); got != "PF20250412001" {
		t.Errorf("FormatOrderNumber() = %q, want PF20250412001", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []OrderStatus{"", "done", "in_progress"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusPreparing, false},
		{StatusReady, false},
		{StatusDelivered, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
