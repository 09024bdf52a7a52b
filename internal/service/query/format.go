package query

import (
	"sqlpad/internal/domain"
	"sqlpad/internal/tableformat"
)

// EmptyResultBody is rendered for a statement that returned no rows.
const EmptyResultBody = "Empty Data[]\nQuery Executed Successfully"

// FormatResult renders one statement section: the echoed statement, then
// a table, the empty marker or the error text, then a blank line.
func FormatResult(r *domain.StatementResult, f tableformat.Format) string {
	return ">>> " + r.Statement + "\n" + formatBody(r, f) + "\n\n"
}

func formatBody(r *domain.StatementResult, f tableformat.Format) string {
	if r.Err != nil {
		return *r.Err
	}
	if r.Result == nil || len(r.Result.Rows) == 0 {
		return EmptyResultBody
	}

	var headers []string
	if r.Result.Labeled() {
		headers = r.Result.Columns
	}
	out, err := tableformat.Render(headers, r.Result.Rows, f)
	if err != nil {
		return err.Error()
	}
	return out
}
