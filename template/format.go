package template

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/promptkit/promptkit/value"
)

// recordFallback stands in for records that have no structured hint.
const recordFallback = "[object Object]"

// Format renders a value as display text. Dispatch follows the
// runtime kind of the value, not any declared type; the hint selects
// among a small set of per-kind styles and unknown hints fall back to
// the kind's default rendering. Null and Undefined format to empty
// text.
func Format(v value.Value, hint string) string {
	switch v.Kind() {
	case value.KindUndefined, value.KindNull:
		return ""
	case value.KindBool:
		return formatBool(v.Bool(), hint)
	case value.KindDate:
		return formatDate(v.Date(), hint)
	case value.KindNumber:
		return formatNumber(v.Number(), hint)
	case value.KindList:
		return formatList(v.Items(), hint)
	case value.KindRecord:
		return formatRecord(v, hint)
	default:
		return v.Text()
	}
}

func formatBool(b bool, hint string) string {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "truefalse":
		if b {
			return "True"
		}
		return "False"
	case "onoff":
		if b {
			return "On"
		}
		return "Off"
	default:
		if b {
			return "Yes"
		}
		return "No"
	}
}

func formatDate(t time.Time, hint string) string {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "iso":
		return t.UTC().Format("2006-01-02T15:04:05.000Z")
	case "time":
		return t.Format("3:04:05 PM")
	case "datetime":
		return t.Format("1/2/2006, 3:04:05 PM")
	default:
		return t.Format("1/2/2006")
	}
}

func formatNumber(n float64, hint string) string {
	h := strings.ToLower(strings.TrimSpace(hint))
	switch {
	case h == "currency":
		return fmt.Sprintf("$%.2f", n)
	case h == "percent":
		return fmt.Sprintf("%.1f%%", n*100)
	case h == "integer":
		return strconv.FormatFloat(math.Round(n), 'f', -1, 64)
	case strings.HasPrefix(h, "fixed"):
		digits := 2
		if rest, ok := strings.CutPrefix(h, "fixed:"); ok {
			if d, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && d >= 0 {
				digits = d
			}
		}
		return strconv.FormatFloat(n, 'f', digits, 64)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// formatList joins elements with ", " or the separator given after
// join:. The separator is taken verbatim, spaces included. Elements
// render recursively with no hint. The count hint yields the length
// instead.
func formatList(items []value.Value, hint string) string {
	if strings.ToLower(strings.TrimSpace(hint)) == "count" {
		return strconv.Itoa(len(items))
	}
	sep := ", "
	if rest, ok := strings.CutPrefix(hint, "join:"); ok {
		sep = rest
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Format(item, "")
	}
	return strings.Join(parts, sep)
}

func formatRecord(v value.Value, hint string) string {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "json":
		out, err := json.MarshalIndent(v.Interface(), "", "  ")
		if err != nil {
			return recordFallback
		}
		return string(out)
	case "keys":
		keys := v.Keys()
		sort.Strings(keys)
		return strings.Join(keys, ", ")
	default:
		return recordFallback
	}
}
