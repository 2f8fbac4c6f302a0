package sales

import (
	"bytes"
	"context"
	"fmt"

	"github.com/storeanalytics/sales-dashboard-go/internal/domain/sales"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/export"
)

var _ sales.SalesService = (*SalesServiceImpl)(nil)

// dailyColumns are the spreadsheet headers of a daily report, in the order
// date, seller, qualifying, total, pct, and the three running columns.
var dailyColumns = map[sales.ReportKind][]string{
	sales.ReportClub: {
		"Data da Venda", "Vendedor",
		"Qtd. CPF Clube (Dia)", "Vendas Totais (Dia)", "% CPF Clube (Dia)",
		"Qtd. CPF Clube (Acumulado)", "Vendas Totais (Acumulado)", "% CPF Clube (Acumulado)",
	},
	sales.ReportSellerItems: {
		"Data", "Atendente",
		"Itens Não-Buffet", "Vendas Totais", "% Venda Itens",
		"Itens Não-Buffet Acumulado", "Vendas Totais Acumulado", "% Venda Itens Acumulado",
	},
}

const sheetDateLayout = "02/01/2006"

// ExportReport renders one report as an XLSX workbook.
func (s *SalesServiceImpl) ExportReport(ctx context.Context, kind sales.ReportKind, req sales.DateRangeRequest) (sales.ExportFile, error) {
	var (
		sheets []export.Sheet
		rng    sales.DateRange
	)

	switch kind {
	case sales.ReportClub, sales.ReportSellerItems:
		var (
			report sales.DailyReport
			err    error
		)
		if kind == sales.ReportClub {
			report, err = s.ClubReport(ctx, req)
		} else {
			report, err = s.SellerItemsReport(ctx, req)
		}
		if err != nil {
			return sales.ExportFile{}, err
		}
		rng = report.Range
		sheets = dailySheets(report)
	case sales.ReportItems:
		report, err := s.ItemSalesReport(ctx, req)
		if err != nil {
			return sales.ExportFile{}, err
		}
		rng = report.Range
		sheets = itemSheets(report)
	default:
		return sales.ExportFile{}, sales.ErrUnknownReport
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, sheets...); err != nil {
		return sales.ExportFile{}, fmt.Errorf("failed to export %s report: %w", kind, err)
	}

	return sales.ExportFile{
		Filename:    fmt.Sprintf("%s_%s_%s.xlsx", kind, rng.Start, rng.End),
		ContentType: export.ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

func dailySheets(report sales.DailyReport) []export.Sheet {
	columns := dailyColumns[report.Kind]
	seller, pct := columns[1], columns[4]

	daily := export.Sheet{Name: "Dados dia a dia", Headers: columns}
	for _, r := range report.Rows {
		daily.Rows = append(daily.Rows, []interface{}{
			r.Date.Format(sheetDateLayout), r.SellerName,
			r.Qualifying, r.Total, cell(r.PctDaily),
			r.QualifyingCumulative, r.TotalCumulative, cell(r.PctCumulative),
		})
	}

	weeklyHeaders := []string{"Início da Semana", "Fim da Semana", seller, columns[2], columns[3], pct}
	weekly := export.Sheet{Name: "Semanal", Headers: weeklyHeaders}
	for _, w := range report.Weekly {
		weekly.Rows = append(weekly.Rows, []interface{}{
			w.WeekStart.Format(sheetDateLayout), w.WeekEnd.Format(sheetDateLayout), w.SellerName,
			w.SumQualifying, w.SumTotal, cell(w.PctWeek),
		})
	}

	store := export.Sheet{
		Name:    "Loja Semanal",
		Headers: []string{"Início da Semana", "Fim da Semana", columns[2], columns[3], pct},
	}
	for _, w := range report.StoreWeekly {
		store.Rows = append(store.Rows, []interface{}{
			w.WeekStart.Format(sheetDateLayout), w.WeekEnd.Format(sheetDateLayout),
			w.SumQualifying, w.SumTotal, cell(w.PctWeek),
		})
	}

	ranking := export.Sheet{Name: "Ranking", Headers: []string{"Posição", seller, "Última Data", columns[7]}}
	for _, e := range report.Ranking {
		ranking.Rows = append(ranking.Rows, []interface{}{
			e.Position, e.SellerName, e.Date.Format(sheetDateLayout), cell(e.PctCumulative),
		})
	}

	return []export.Sheet{daily, weekly, store, ranking}
}

func itemSheets(report sales.ItemSalesReport) []export.Sheet {
	items := export.Sheet{Name: "Itens por Atendente", Headers: []string{"Item", "Atendente", "Vendas Totais"}}
	for _, r := range report.Rows {
		items.Rows = append(items.Rows, []interface{}{r.Item, r.SellerName, r.Sales})
	}

	totals := export.Sheet{Name: "Totais por Item", Headers: []string{"Item", "Total do Item"}}
	for _, t := range report.ItemTotals {
		totals.Rows = append(totals.Rows, []interface{}{t.Item, t.Sales})
	}

	return []export.Sheet{items, totals}
}

// cell leaves undefined percentages blank.
func cell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
