package tsplib

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspbb/tsp"
)

// WriteTour writes tour in TSPLIB tour format:
//
//	NAME : <name>.tour
//	COMMENT : Length <cost>
//	TYPE : TOUR
//	DIMENSION : <n>
//	TOUR_SECTION
//	<id>
//	...
//	-1
//	EOF
func WriteTour(w io.Writer, inst *Instance, tour []int, cost float64) error {
	var (
		bw   = bufio.NewWriter(w)
		name = "tour"
		id   int
	)
	if inst != nil && inst.Name != "" {
		name = inst.Name
	}
	if !strings.HasSuffix(name, ".tour") {
		name += ".tour"
	}
	fmt.Fprintf(bw, "%s : %s\n", keyName, name)
	fmt.Fprintf(bw, "%s : Length %s\n", keyComment, formatCost(cost))
	fmt.Fprintf(bw, "%s : TOUR\n", keyType)
	fmt.Fprintf(bw, "%s : %d\n", keyDimension, len(tour))
	bw.WriteString("TOUR_SECTION\n")
	for _, id = range tour {
		fmt.Fprintf(bw, "%d\n", id)
	}
	bw.WriteString("-1\n")
	bw.WriteString(keyEOF + "\n")

	return errors.Wrap(bw.Flush(), "write tour")
}

// Solution is the JSON rendering of a search result.
type Solution struct {
	Name      string  `json:"name,omitempty"`
	Dimension int     `json:"dimension"`
	Tour      []int   `json:"tour"`
	Cost      float64 `json:"cost"`
	RootBound float64 `json:"root_bound"`
	Optimal   bool    `json:"optimal"`
	Stopped   string  `json:"stopped,omitempty"`
	Nodes     int64   `json:"nodes"`
	Pruned    int64   `json:"pruned"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

// NewSolution flattens res for JSON output.
func NewSolution(inst *Instance, res tsp.Result) Solution {
	s := Solution{
		Dimension: len(res.Tour),
		Tour:      res.Tour,
		Cost:      res.Cost,
		RootBound: res.RootBound,
		Optimal:   res.Optimal,
		Nodes:     res.Nodes,
		Pruned:    res.Pruned,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	if inst != nil {
		s.Name = inst.Name
	}
	if res.Stopped != tsp.NotStopped {
		s.Stopped = res.Stopped.String()
	}

	return s
}

// WriteJSON writes res as an indented JSON object.
func WriteJSON(w io.Writer, inst *Instance, res tsp.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(NewSolution(inst, res)), "write json")
}

// formatCost prints integers without a fraction and everything else with
// the shortest round-tripping representation.
func formatCost(c float64) string {
	if c == float64(int64(c)) {
		return fmt.Sprintf("%d", int64(c))
	}

	return fmt.Sprintf("%g", c)
}
