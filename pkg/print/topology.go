package print

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
)

func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 4, ' ', 0)
}

// Topology prints the final deployment snapshot as a table or json.
func Topology(w io.Writer, snapshot *cluster.TopologySnapshot, format string) {
	if snapshot == nil {
		return
	}

	switch format {
	case "json":
		printTopologyJSON(w, snapshot)
	default:
		printTopologyTable(w, snapshot)
	}
}

func printTopologyJSON(w io.Writer, snapshot *cluster.TopologySnapshot) {
	str, _ := json.MarshalIndent(snapshot, "", "    ")
	fmt.Fprintln(w, string(str))
}

func printTopologyTable(w io.Writer, snapshot *cluster.TopologySnapshot) {
	tw := NewTabWriter(w)
	defer tw.Flush()

	fmtColumns := "%s\t%s\t%s\n"
	fmt.Fprintf(tw, fmtColumns, "KIND", "NAME", "STATUS")
	for _, r := range snapshot.Resources {
		fmt.Fprintf(tw, fmtColumns, r.Kind, r.Name, r.Status)
	}
}
