package models

// MenuItem represents a dish on the canteen menu as served by the backend
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Benefits string  `json:"benefits,omitempty"`
	Image    string  `json:"image,omitempty"`
	SoldOut  bool    `json:"soldOut"`

	Extra Extra `json:"-"`
}

type menuItemFields MenuItem

// UnmarshalJSON keeps members without a typed field in Extra
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var fields menuItemFields
	extra, err := decodeRecord(data, &fields)
	if err != nil {
		return err
	}
	*m = MenuItem(fields)
	m.Extra = extra
	return nil
}

// MarshalJSON writes the typed members followed by Extra
func (m MenuItem) MarshalJSON() ([]byte, error) {
	return encodeRecord(menuItemFields(m), m.Extra)
}

// MenuUpdate is the body of a sold-out toggle request
type MenuUpdate struct {
	ItemID  string `json:"itemId"`
	SoldOut *bool  `json:"soldOut"`
}
