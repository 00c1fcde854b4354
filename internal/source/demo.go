package source

import (
	"fmt"
	"math/rand"

	"gridlens/internal/model"
)

var (
	demoRegions = []string{"emea", "amer", "apac"}
	demoTiers   = []string{"free", "standard", "enterprise"}
	demoNames   = []string{
		"Acme Logistics", "Borealis Foods", "Cobalt Mining", "Dune Shipping",
		"Electra Power", "Fathom Marine", "Gilded Retail", "Harbor Freight",
	}
)

// DemoRows builds a deterministic customers dataset for demo mode and for
// cmd/rowgen.
func DemoRows(n int) []model.Row {
	rng := rand.New(rand.NewSource(42))
	rows := make([]model.Row, 0, n)
	for i := 0; i < n; i++ {
		name := demoNames[rng.Intn(len(demoNames))]
		rows = append(rows, model.Row{
			"customerId": fmt.Sprintf("C%04d", i+1),
			"name":       name,
			"domain":     fmt.Sprintf("cust%d.example.com", i+1),
			"active":     rng.Intn(4) != 0,
			"tier":       demoTiers[rng.Intn(len(demoTiers))],
			"region":     demoRegions[rng.Intn(len(demoRegions))],
			"balance":    float64(rng.Intn(100000)) / 100,
			"openTasks":  float64(rng.Intn(12)),
		})
	}
	return rows
}

// DemoColumns is the column set matching DemoRows.
func DemoColumns() []model.Column {
	return []model.Column{
		{Key: "customerId", Kind: model.KindString},
		{Key: "name", Kind: model.KindString},
		{Key: "domain", Kind: model.KindString},
		{Key: "active", Kind: model.KindBool},
		{Key: "tier", Kind: model.KindString},
		{Key: "region", Kind: model.KindString},
		{Key: "balance", Kind: model.KindNumber},
		{Key: "openTasks", Kind: model.KindNumber},
	}
}

// Demo returns an in-memory demo source.
func Demo(n int) *Local {
	return NewLocal(DemoColumns(), DemoRows(n))
}
