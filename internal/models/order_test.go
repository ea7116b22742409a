package models

import (
	"encoding/json"
	"testing"
)

func TestOrderID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderID
		wantErr bool
	}{
		{name: "string", input: `"42"`, want: "42"},
		{name: "number", input: `42`, want: "42"},
		{name: "null", input: `null`, want: ""},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id OrderID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("id = %q, want %q", id, tt.want)
			}
		})
	}
}

func TestOrder_ItemsSummary(t *testing.T) {
	order := Order{Items: []OrderLine{
		{Name: "Veggie Burger", Quantity: 2},
		{Name: "Samosa", Quantity: 1},
	}}

	if got := order.ItemsSummary(); got != "Veggie Burger x 2, Samosa x 1" {
		t.Errorf("ItemsSummary() = %q", got)
	}
}
