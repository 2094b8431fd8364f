package model

const (
	InsideDhaka  = "inside_dhaka"
	OutsideDhaka = "outside_dhaka"

	InsideZoneCost  = 60
	OutsideZoneCost = 99
)

var shippingCosts = map[string]float64{
	InsideDhaka:  InsideZoneCost,
	OutsideDhaka: OutsideZoneCost,
}

// ShippingCost returns the fixed delivery charge for a shipping method.
func ShippingCost(method string) (float64, bool) {
	cost, ok := shippingCosts[method]
	return cost, ok
}
