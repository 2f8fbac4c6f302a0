package chart

import (
	"sort"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/vegalite"
)

const itemsTitle = "Vendas de Itens por Atendente"

// ItemTotals sums sales per item across sellers, largest first. Items with
// equal totals are ordered by name.
func ItemTotals(rows []sales.ItemSellerSales) []sales.ItemTotal {
	index := make(map[string]int)
	totals := make([]sales.ItemTotal, 0)
	for _, r := range rows {
		i, ok := index[r.Item]
		if !ok {
			i = len(totals)
			index[r.Item] = i
			totals = append(totals, sales.ItemTotal{Item: r.Item})
		}
		totals[i].Sales += r.Sales
	}

	sort.SliceStable(totals, func(a, b int) bool {
		if totals[a].Sales != totals[b].Sales {
			return totals[a].Sales > totals[b].Sales
		}
		return totals[a].Item < totals[b].Item
	})
	return totals
}

type itemSellerBar struct {
	Item   string `json:"item"`
	Seller string `json:"seller"`
	Sales  int64  `json:"sales"`
	Total  int64  `json:"total_item"`
}

// Items draws each item's total as a grey bar with the per-seller bars on top.
// Clicking a seller in the legend dims the other sellers. Both layers share
// the item order of totals. nil is returned when there are no rows.
func Items(rows []sales.ItemSellerSales, totals []sales.ItemTotal) *vegalite.Spec {
	if len(rows) == 0 {
		return nil
	}

	itemOrder := make([]string, len(totals))
	totalOf := make(map[string]int64, len(totals))
	for i, t := range totals {
		itemOrder[i] = t.Item
		totalOf[t.Item] = t.Sales
	}

	bars := make([]itemSellerBar, len(rows))
	for i, r := range rows {
		bars[i] = itemSellerBar{Item: r.Item, Seller: r.SellerName, Sales: r.Sales, Total: totalOf[r.Item]}
	}

	background := vegalite.Spec{
		Data: &vegalite.Data{Values: totals},
		Mark: &vegalite.Mark{Type: "bar", Color: "lightgray"},
		Encoding: &vegalite.Encoding{
			Y: &vegalite.Channel{Field: "item", Type: vegalite.Nominal, Title: "Item", Sort: itemOrder},
			X: &vegalite.Channel{Field: "sales", Type: vegalite.Quantitative, Title: "Vendas Totais"},
			Tooltip: []vegalite.Channel{
				{Field: "item", Type: vegalite.Nominal, Title: "Item"},
				{Field: "sales", Type: vegalite.Quantitative, Title: "Total do Item", Format: ","},
			},
		},
	}

	perSeller := vegalite.Spec{
		Data: &vegalite.Data{Values: bars},
		Params: []vegalite.Param{{
			Name:   "seller",
			Select: &vegalite.Selection{Type: "point", Fields: []string{"seller"}},
			Bind:   "legend",
		}},
		Mark: &vegalite.Mark{Type: "bar"},
		Encoding: &vegalite.Encoding{
			Y:     &vegalite.Channel{Field: "item", Type: vegalite.Nominal, Sort: itemOrder},
			X:     &vegalite.Channel{Field: "sales", Type: vegalite.Quantitative},
			Color: &vegalite.Channel{Field: "seller", Type: vegalite.Nominal, Title: "Atendente"},
			Opacity: &vegalite.Channel{
				Condition: &vegalite.Condition{Param: "seller", Value: 1},
				Value:     0.2,
			},
			Tooltip: []vegalite.Channel{
				{Field: "item", Type: vegalite.Nominal, Title: "Item"},
				{Field: "seller", Type: vegalite.Nominal, Title: "Atendente"},
				{Field: "sales", Type: vegalite.Quantitative, Title: "Vendas do Atendente", Format: ","},
				{Field: "total_item", Type: vegalite.Quantitative, Title: "Total do Item", Format: ","},
			},
		},
	}

	return &vegalite.Spec{
		Schema: vegalite.Schema,
		Title:  itemsTitle,
		Width:  "container",
		Layer:  []vegalite.Spec{background, perSeller},
	}
}
