// Package revenue projects creator income after card processing fees.
package revenue

import (
	"creator-store-check/internal/config"
	"creator-store-check/internal/model"
)

// FeeModel is a percentage of gross plus a fixed amount per sale.
type FeeModel struct {
	Percent float64
	Fixed   float64
}

func FromConfig(c config.RevenueConfig) FeeModel {
	return FeeModel{Percent: c.PercentFee, Fixed: c.FixedFee}
}

// Fees charged on gross revenue made of sales individual sales.
func (m FeeModel) Fees(gross float64, sales int) float64 {
	return gross*m.Percent + float64(sales)*m.Fixed
}

// Sale is the breakdown of a single purchase.
type Sale struct {
	Price      float64 `json:"price"`
	Fee        float64 `json:"fee"`
	CreatorNet float64 `json:"creator_net"`
	// SharePercent is CreatorNet as a percentage of Price; 0 for a zero price.
	SharePercent float64 `json:"share_percent"`
}

func (m FeeModel) Sale(price float64) Sale {
	fee := m.Fees(price, 1)
	s := Sale{Price: price, Fee: fee, CreatorNet: price - fee}
	if price != 0 {
		s.SharePercent = s.CreatorNet / price * 100
	}
	return s
}

// Project computes every scenario at the given average price.
func Project(m FeeModel, scenarios []config.Scenario, avgPrice float64, monthsPerYear int) []model.Projection {
	out := make([]model.Projection, 0, len(scenarios))
	for _, sc := range scenarios {
		gross := float64(sc.SalesPerMonth) * avgPrice
		fees := m.Fees(gross, sc.SalesPerMonth)
		net := gross - fees
		out = append(out, model.Projection{
			Name:          sc.Name,
			SalesPerMonth: sc.SalesPerMonth,
			AvgPrice:      avgPrice,
			MonthlyGross:  gross,
			Fees:          fees,
			MonthlyNet:    net,
			AnnualNet:     net * float64(monthsPerYear),
		})
	}
	return out
}
