package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Details is the "detailed_data" block of a report.
type Details struct {
	StoreFiles    map[string]FileFact `json:"store_files"`
	PaymentSystem map[string]bool     `json:"payment_system"`
	// BookCatalog is nil until the catalog was read and summed; nil is
	// written as {}.
	BookCatalog    *CatalogSummary `json:"book_catalog"`
	Infrastructure Infrastructure  `json:"infrastructure"`
}

func (d Details) MarshalJSON() ([]byte, error) {
	type plain Details
	out := struct {
		plain
		BookCatalog any `json:"book_catalog"`
	}{plain: plain(d), BookCatalog: struct{}{}}
	if d.BookCatalog != nil {
		out.BookCatalog = d.BookCatalog
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an empty or null book_catalog back as nil.
func (d *Details) UnmarshalJSON(data []byte) error {
	type plain Details
	aux := struct {
		*plain
		BookCatalog json.RawMessage `json:"book_catalog"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.BookCatalog = nil
	raw := bytes.TrimSpace(aux.BookCatalog)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	var sum CatalogSummary
	if err := json.Unmarshal(raw, &sum); err != nil {
		return err
	}
	d.BookCatalog = &sum
	return nil
}

type FileFact struct {
	Exists bool  `json:"exists"`
	Size   int64 `json:"size"`
}

type CatalogSummary struct {
	TotalBooks         int     `json:"total_books"`
	TotalCatalogValue  float64 `json:"total_catalog_value"`
	CreatorSovereignty bool    `json:"creator_sovereignty"`
	WernerHealth       bool    `json:"werner_health"`
	SpiralLogic        bool    `json:"spirallogic"`
}

// Projection is one monthly sales scenario after payment processing fees.
type Projection struct {
	Name          string  `json:"name"`
	SalesPerMonth int     `json:"sales_per_month"`
	AvgPrice      float64 `json:"avg_price"`
	MonthlyGross  float64 `json:"monthly_gross"`
	Fees          float64 `json:"fees"`
	MonthlyNet    float64 `json:"monthly_net"`
	AnnualNet     float64 `json:"annual_net"`
}

// Infrastructure collects revenue projections and the deployment and
// compliance rule results. On the wire projections are flattened into
// "<name>_monthly" and "<name>_annual" keys next to "deployment" and
// "anti_isbn".
type Infrastructure struct {
	Projections []Projection
	Deployment  map[string]bool
	AntiISBN    map[string]bool
}

const (
	monthlySuffix = "_monthly"
	annualSuffix  = "_annual"
)

// Projection returns the scenario with the given name.
func (i Infrastructure) Projection(name string) (Projection, bool) {
	for _, p := range i.Projections {
		if p.Name == name {
			return p, true
		}
	}
	return Projection{}, false
}

func (i Infrastructure) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 2*len(i.Projections)+2)
	for _, p := range i.Projections {
		m[p.Name+monthlySuffix] = p.MonthlyNet
		m[p.Name+annualSuffix] = p.AnnualNet
	}
	if i.Deployment != nil {
		m["deployment"] = i.Deployment
	}
	if i.AntiISBN != nil {
		m["anti_isbn"] = i.AntiISBN
	}
	return json.Marshal(m)
}

// UnmarshalJSON restores the flattened form. Only the net figures survive a
// round trip; projections come back sorted by name.
func (i *Infrastructure) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Infrastructure{}

	byName := map[string]*Projection{}
	get := func(name string) *Projection {
		p, ok := byName[name]
		if !ok {
			p = &Projection{Name: name}
			byName[name] = p
		}
		return p
	}

	for k, v := range raw {
		switch {
		case k == "deployment":
			if err := json.Unmarshal(v, &i.Deployment); err != nil {
				return err
			}
		case k == "anti_isbn":
			if err := json.Unmarshal(v, &i.AntiISBN); err != nil {
				return err
			}
		case strings.HasSuffix(k, monthlySuffix):
			if err := json.Unmarshal(v, &get(strings.TrimSuffix(k, monthlySuffix)).MonthlyNet); err != nil {
				return err
			}
		case strings.HasSuffix(k, annualSuffix):
			if err := json.Unmarshal(v, &get(strings.TrimSuffix(k, annualSuffix)).AnnualNet); err != nil {
				return err
			}
		}
	}

	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		i.Projections = append(i.Projections, *byName[n])
	}
	return nil
}
