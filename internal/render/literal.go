package render

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// FormatLiteral renders a recorded cty value as a literal in the generated
// script's syntax. Unknown or exotic types degrade to a quoted textual
// representation rather than failing; the script is best-effort and the
// user is expected to review it.
func FormatLiteral(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return "None"
	}
	if !v.IsKnown() {
		return quoteString("<unknown>")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return quoteString(v.AsString())
	case t == cty.Bool:
		if v.True() {
			return "True"
		}
		return "False"
	case t == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var elems []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			elems = append(elems, FormatLiteral(ev))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case t.IsObjectType() || t.IsMapType():
		// cty iterates maps and object attributes in key order, so the
		// rendered form is deterministic.
		var elems []string
		for it := v.ElementIterator(); it.Next(); {
			ek, ev := it.Element()
			elems = append(elems, FormatLiteral(ek)+": "+FormatLiteral(ev))
		}
		return "{" + strings.Join(elems, ", ") + "}"
	default:
		return quoteString(v.GoString())
	}
}

// quoteString renders s as a single-quoted script string literal.
func quoteString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`)
	return "'" + replacer.Replace(s) + "'"
}
