package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ruleWidth is the minimum width of the rule row under the header, per the
// report column spec (>= 35 dashes).
const ruleWidth = 35

const rowFormat = "%2s%18s%3s%6s%3s%3s"

// Render builds the fixed-width timing table: one header row, one rule row,
// then one row per instruction in program order. When verbose is true, each
// row gets a trailing hazard-message summary; the core always makes
// Messages available on every record regardless of this flag.
func Render(records []*InstructionRecord, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, rowFormat, "", "Instruction", "IS", "EX", "WB", "CM")
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteByte('\n')

	for _, r := range records {
		fmt.Fprintf(&b, rowFormat,
			strconv.Itoa(r.Index),
			r.InstructionText(),
			cycleCell(r, "IS"),
			exCell(r),
			cycleCell(r, "WB"),
			cycleCell(r, "CM"),
		)

		if verbose {
			if msg := messageSummary(r); msg != "" {
				b.WriteString("  " + msg)
			}
		}

		b.WriteByte('\n')
	}

	return b.String()
}

// cycleCell renders the cycle recorded for stage, or blank if the record
// never reached it.
func cycleCell(r *InstructionRecord, stage string) string {
	cycle, ok := r.historyCycle(stage)
	if !ok {
		return ""
	}

	return strconv.FormatUint(cycle, 10)
}

// exCell renders the EX column: "<start>-<end>" when the instruction spent
// more than one cycle in EX, "<start>" when start and end coincide, or blank
// if it never entered EX.
func exCell(r *InstructionRecord) string {
	start, ok := r.historyCycle("EX")
	if !ok {
		return ""
	}

	end, ok := r.historyCycle("EX-end")
	if !ok || end == start {
		return strconv.FormatUint(start, 10)
	}

	return fmt.Sprintf("%d-%d", start, end)
}

// messageSummary joins a record's hazard annotations for verbose output.
// Messages is an unordered set, but the rendered report must be
// deterministic across repeated runs on the same input, so the annotations
// are sorted before joining rather than ranged over directly.
func messageSummary(r *InstructionRecord) string {
	ordered := make([]Message, 0, len(r.Messages))
	for m := range r.Messages {
		ordered = append(ordered, m)
	}

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}

		if a.Resource != b.Resource {
			return a.Resource < b.Resource
		}

		return a.Producer < b.Producer
	})

	msgs := make([]string, len(ordered))
	for i, m := range ordered {
		msgs[i] = m.String()
	}

	return strings.Join(msgs, "; ")
}
