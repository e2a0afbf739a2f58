package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/property"
)

func init() {
	// add flags
	key := "depth"
	DumpCmd.Flags().Int(key, -1, util.WrapString("Maximum depth to print (-1 prints the whole tree)"))
	key = "iterations"
	PerfCmd.Flags().Int(key, 100, util.WrapString("How many times the file is parsed and serialized"))
	key = "metrics"
	PerfCmd.Flags().Bool(key, false, util.WrapString("Print the codec metrics in Prometheus text format after the run"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

// writeTree prints one line per node, indented by depth. A negative maxDepth prints everything.
func writeTree(w io.Writer, t *property.Tree, maxDepth int) {
	t.Walk(func(n *property.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		name := indent + n.DisplayName()
		marker := ""
		if n.IsOpaque() {
			marker = " (raw)"
		}
		_, _ = fmt.Fprintf(w, "%-40s %-28s %s%s\n", name, n.DisplayType(), n.DisplayValue(), marker)
		return maxDepth < 0 || depth < maxDepth
	})
}

// firstDiff returns the offset of the first differing byte, or -1 if a and b are equal
func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
