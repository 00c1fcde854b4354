package catalog

import (
	"gridlens/internal/grid"
	"gridlens/internal/model"
)

// Default is the catalog used when none is supplied: no actions, no
// entities, columns inferred from the data by the caller.
func Default(title string) *Catalog {
	return &Catalog{
		Title:      title,
		PageSizes:  grid.DefaultPageSizes,
		TruncateAt: defaultTruncateAt,
		SuggestKey: "entity",
	}
}

// Demo is the catalog matching the generated demo dataset, with drill-down
// scenarios and suggestion entities wired up.
func Demo() *Catalog {
	c := Default("Customers (demo)")
	c.SuggestKey = "customerId"
	c.Columns = []model.Column{
		{Key: "customerId"},
		{Key: "name"},
		{Key: "domain"},
		{Key: "active", Kind: model.KindBool},
		{Key: "tier"},
		{Key: "region"},
		{Key: "balance", Kind: model.KindNumber},
		{Key: "openTasks", Kind: model.KindNumber},
	}
	c.Actions = []model.Action{
		{Name: "Sales overview", TargetDomain: "sales", TargetKey: "overview"},
		{
			Name:         "Billing history",
			TargetDomain: "billing",
			TargetKey:    "history",
			Mappings:     []model.KeyMapping{{Source: "customerId", Target: "accountId"}},
		},
		{
			Name:         "Open tickets",
			TargetDomain: "support",
			TargetKey:    "tickets",
			Mappings:     []model.KeyMapping{{Source: "domain", Target: "customerDomain"}},
		},
	}
	c.Entities = []model.Entity{
		{Key: "C0001", Label: "Acme Logistics", Tags: []string{"enterprise"}},
		{Key: "C0002", Label: "Borealis Foods", Tags: []string{"standard"}},
		{Key: "C0003", Label: "Cobalt Mining", Tags: []string{"enterprise"}},
		{Key: "C0004", Label: "Dune Shipping", Tags: []string{"free"}},
	}
	return c
}
