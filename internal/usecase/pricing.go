package usecase

import (
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/utils"
)

// PriceCalculator is the single source of seat prices.
type PriceCalculator struct {
	vipPrice     int
	regularPrice int
	currency     string
}

func NewPriceCalculator(cfg utils.PricingConfig) PriceCalculator {
	return PriceCalculator{
		vipPrice:     cfg.VIPPrice,
		regularPrice: cfg.RegularPrice,
		currency:     cfg.Currency,
	}
}

func (p PriceCalculator) UnitPrice(class entity.SeatClass) int {
	if class == entity.SeatClassVIP {
		return p.vipPrice
	}
	return p.regularPrice
}

// ComputeTotal sums the unit price of every seat. The seat class comes from
// the row letter, so the order of seats does not matter. Row letters are
// matched case-insensitively.
func (p PriceCalculator) ComputeTotal(seats []string) int {
	total := 0
	for _, seat := range seats {
		seat = strings.ToUpper(strings.TrimSpace(seat))
		if seat == "" {
			continue
		}
		total += p.UnitPrice(entity.ClassForRow(seat[0]))
	}
	return total
}

func (p PriceCalculator) Currency() string {
	return p.currency
}
