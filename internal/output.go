package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputJSON selects JSON output; anything else prints tables.
const OutputJSON = "json"

// NothingDueMessage is printed when no unpaid expense is due today.
const NothingDueMessage = "No expenses due today."

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Views    []JSONView `json:"views"`
	Currency string     `json:"currency"`
	Message  string     `json:"message,omitempty"`
}

// JSONView is one list of expenses with its total
type JSONView struct {
	Title    string        `json:"title"`
	Expenses []JSONExpense `json:"expenses"`
	Count    int           `json:"count"`
	Total    string        `json:"total"`
}

// JSONExpense is the JSON output format for an expense. Amounts are plain
// decimals with two fraction digits, dates are YYYY-MM-DD.
type JSONExpense struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	DueDate  string  `json:"due_date"`
	Kind     string  `json:"kind"`
	Paid     bool    `json:"paid"`
	PaidDate *string `json:"paid_date"`
}

// JSONResult reports the expense a command changed
type JSONResult struct {
	Action  string      `json:"action"`
	Expense JSONExpense `json:"expense"`
}

// ToJSONExpense converts an expense for JSON output
func ToJSONExpense(e Expense) JSONExpense {
	j := JSONExpense{
		ID:      e.ID,
		Name:    e.Name,
		Amount:  FixedAmount(e.Amount),
		DueDate: e.DueDate.StorageString(),
		Kind:    e.Kind.String(),
		Paid:    e.Paid,
	}
	if !e.PaidDate.IsEmpty() {
		s := e.PaidDate.StorageString()
		j.PaidDate = &s
	}
	return j
}

// PrintViewsJSON outputs one or more views in JSON format
func PrintViewsJSON(w io.Writer, cur Currency, views ...View) error {
	return writeJSON(w, toJSONOutput(cur, views))
}

// PrintNothingDueJSON outputs an empty due-today view carrying NothingDueMessage.
func PrintNothingDueJSON(w io.Writer, cur Currency, v View) error {
	out := toJSONOutput(cur, []View{v})
	out.Message = NothingDueMessage
	return writeJSON(w, out)
}

func toJSONOutput(cur Currency, views []View) JSONOutput {
	out := JSONOutput{Views: make([]JSONView, 0, len(views)), Currency: cur.Code}
	for _, v := range views {
		jv := JSONView{
			Title:    v.Title,
			Expenses: make([]JSONExpense, 0, len(v.Expenses)),
			Count:    len(v.Expenses),
			Total:    FixedAmount(v.Total),
		}
		for _, e := range v.Expenses {
			jv.Expenses = append(jv.Expenses, ToJSONExpense(e))
		}
		out.Views = append(out.Views, jv)
	}
	return out
}

// PrintResultJSON outputs the expense an action touched
func PrintResultJSON(w io.Writer, action string, e Expense) error {
	return writeJSON(w, JSONResult{Action: action, Expense: ToJSONExpense(e)})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintViewTable outputs a view as a formatted table with a total footer.
// Paid views get an extra "Paid on" column.
func PrintViewTable(w io.Writer, v View) {
	showPaid := false
	for _, r := range v.Rows {
		if r.Paid {
			showPaid = true
			break
		}
	}

	fmt.Fprintf(w, "%s (%d)\n", v.Title, len(v.Rows))

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"ID", "Name", "Amount", "Due", "Kind"}
	if showPaid {
		header = append(header, "Paid on")
	}
	t.AppendHeader(header)

	for _, r := range v.Rows {
		kind := r.Kind
		if Kind(r.Kind) == KindRecurring {
			kind = text.FgCyan.Sprint(r.Kind)
		}
		row := table.Row{r.ID, r.Name, r.Amount, r.DueDate, kind}
		if showPaid {
			paidOn := text.FgHiBlack.Sprint("-")
			if r.PaidOn != "" {
				paidOn = text.FgGreen.Sprint(r.PaidOn)
			}
			row = append(row, paidOn)
		}
		t.AppendRow(row)
	}

	t.AppendSeparator()

	footer := table.Row{"", text.Bold.Sprint("Total"), text.Bold.Sprint(v.TotalText), "", ""}
	if showPaid {
		footer = append(footer, "")
	}
	t.AppendFooter(footer)

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()
}

// PrintResult prints a one-line confirmation for an action.
func PrintResult(w io.Writer, action string, r Row) {
	fmt.Fprintf(w, "%s #%d: %s %s due %s (%s)\n", action, r.ID, r.Name, r.Amount, r.DueDate, r.Kind)
}
