// Package pdf genera el extracto mensual de un usuario en PDF (A4) con Maroto v2.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + rol          │  Extracto mes/año          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Saldo | Propinas | Ingresos mes | Descuentos mes  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Horas | Nota | Importe                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de emisión                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

var _ reports.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorCredit  = &props.Color{Red: 5, Green: 150, Blue: 105}
	colorDebit   = &props.Color{Red: 225, Green: 29, Blue: 72}
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var typeLabels = map[entity.EntryType]string{
	entity.EntryType5H:      "Turno 5 h",
	entity.EntryType8H:      "Turno 8 h",
	entity.EntryTypeCustom:  "Personalizado",
	entity.EntryTypeExpense: "Gasto",
	entity.EntryTypePayment: "Pago",
	entity.EntryTypeTip:     "Propina",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa reports.StatementPDFGenerator.
type MarotoStatementGenerator struct {
	printer *message.Printer
}

// NewMarotoStatementGenerator construye el generador; lang decide los separadores de miles
// y decimales de los importes (p.ej. language.Turkish -> 1.234,5).
func NewMarotoStatementGenerator(lang language.Tag) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{printer: message.NewPrinter(lang)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) Generate(st reports.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto "+st.User.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.entryRows(st)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Emitido el "+st.GeneratedAt.Format("02/01/2006 15:04")+". Las propinas se informan aparte y no forman parte del saldo.",
			props.Text{Size: 7, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) headerRow(st reports.Statement) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(st.User.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(string(st.User.Role), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("EXTRACTO MENSUAL", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(monthTitle(st.Year, st.Month), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
		),
	)
}

func (g *MarotoStatementGenerator) totalsRow(st reports.Statement) core.Row {
	cell := func(label string, amount decimal.Decimal, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(g.formatAmount(amount, st.Currency), props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Saldo total", st.Balance, colorPrimary),
		cell("Propinas (total)", st.TipsTotal, colorGray),
		cell("Ingresos del mes", st.MonthCredit, colorCredit),
		cell("Descuentos del mes", st.MonthDebit.Neg(), colorDebit),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Horas", 1, align.Center),
		h("Nota", 4, align.Left),
		h("Importe", 3, align.Right),
	)
}

func (g *MarotoStatementGenerator) entryRows(st reports.Statement) []core.Row {
	if len(st.Entries) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el mes.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		))}
	}
	rows := make([]core.Row, 0, len(st.Entries))
	for _, e := range st.Entries {
		color := colorCredit
		if e.Amount.IsNegative() {
			color = colorDebit
		}
		if e.Type == entity.EntryTypeTip {
			color = colorGray
		}
		hours := "—"
		if e.Hours != nil {
			hours = e.Hours.String()
		}
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(e.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(typeLabel(e.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(hours, props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(4).Add(text.New(e.Note, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(g.formatAmount(e.Amount, st.Currency), props.Text{Size: 8, Top: 1, Right: 1, Align: align.Right, Color: color})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatAmount importe con signo, separadores del idioma y moneda: "+1.234,5 TL".
func (g *MarotoStatementGenerator) formatAmount(amount decimal.Decimal, currency string) string {
	sign := "+"
	if amount.IsNegative() {
		sign = "-"
	}
	if amount.IsZero() {
		sign = ""
	}
	f := amount.Abs().InexactFloat64()
	return sign + g.printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + " " + currency
}

func monthTitle(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d/%d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

func typeLabel(t entity.EntryType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}
