package entity

// Product katalogdagi bitta tovar
type Product struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	CreditPrice float64  `json:"credit"`
	Stock       int      `json:"stock"`
	Description string   `json:"description,omitempty"`

	// Derived from the display name. Zero value means unknown,
	// never "zero watts" or "no socket".
	Socket   string `json:"socket,omitempty"`
	PowerReq int    `json:"power_req,omitempty"`
	Wattage  int    `json:"wattage,omitempty"`
}

// EffectivePrice narx taqqoslash uchun ishlatiladigan qiymat.
// The shop sells on installment, so filtering and totals use the
// credit price when the catalog provides one.
func (p *Product) EffectivePrice() float64 {
	if p.CreditPrice > 0 {
		return p.CreditPrice
	}
	return p.Price
}

// InStock omborda bormi
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// HasSocket socket aniqlanganmi
func (p *Product) HasSocket() bool {
	return p.Socket != ""
}

// HasPowerReq quvvat talabi aniqlanganmi
func (p *Product) HasPowerReq() bool {
	return p.PowerReq > 0
}

// HasWattage PSU quvvati aniqlanganmi
func (p *Product) HasWattage() bool {
	return p.Wattage > 0
}
