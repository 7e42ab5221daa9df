package component

type Health struct {
	Current float64
	Max     float64
}

var HealthComponent = NewComponent[Health]()

func FullHealth(max float64) *Health {
	return &Health{Current: max, Max: max}
}

// Damage subtracts amount and keeps Current within [0, Max].
func (h *Health) Damage(amount float64) {
	if amount < 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Dead() bool {
	return h.Current <= 0
}

// CoinCollector counts the coins an entity has picked up.
type CoinCollector struct {
	Coins int
}

var CoinCollectorComponent = NewComponent[CoinCollector]()
