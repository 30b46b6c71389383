package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a table of step results followed by the final balances.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Scenario: %s\n\n", r.Scenario)
	fmt.Fprintln(tw, "STEP\tTYPE\tTIME\tRESULT\tDETAIL")
	for _, s := range r.Steps {
		typ, result, detail := s.Type, "", ""
		if s.Result == nil {
			typ = "advance " + s.Advance.String()
		} else {
			result = s.Result.Result.String()
			if !s.Passed {
				result += " (expected " + s.Expect + ")"
			}
			switch {
			case !s.Result.Applied:
				detail = s.Result.Message
			case s.Result.Transfer != nil:
				q := s.Result.Transfer
				detail = fmt.Sprintf("%s, withheld %s", q.Category, q.Withheld.Format(r.Decimals))
			case s.Result.Distribution != nil:
				d := s.Result.Distribution
				if d.Skipped {
					detail = "below trigger, nothing distributed"
				} else {
					detail = fmt.Sprintf("distributed %s of %s", d.Distributed.Format(r.Decimals), d.Withheld.Format(r.Decimals))
				}
			}
		}
		if s.Name != "" {
			typ = s.Name + ": " + typ
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.Index, typ, s.Time.Format("2006-01-02 15:04:05"), result, detail)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ACCOUNT\tADDRESS\tBALANCE")
	for _, b := range r.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.Address.Short(), b.Amount.Format(r.Decimals))
	}
	fmt.Fprintf(tw, "(withheld)\t\t%s\n", r.Withheld.Format(r.Decimals))

	if failed := r.Failed(); len(failed) > 0 {
		fmt.Fprintf(tw, "\n%d step(s) did not match their expectation\n", len(failed))
	}
	return tw.Flush()
}
