package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspbb/tsp"
)

// Keywords understood by Parse.
const (
	keyName           = "NAME"
	keyComment        = "COMMENT"
	keyType           = "TYPE"
	keyDimension      = "DIMENSION"
	keyEdgeWeightType = "EDGE_WEIGHT_TYPE"
	keyCoordSection   = "NODE_COORD_SECTION"
	keyEOF            = "EOF"

	// EdgeWeightEuc2D is the only metric Parse accepts.
	EdgeWeightEuc2D = "EUC_2D"
	// TypeTSP is the only problem type Parse accepts.
	TypeTSP = "TSP"
)

// Instance is a parsed TSPLIB problem.
type Instance struct {
	Name           string
	Comment        string
	Type           string
	Dimension      int
	EdgeWeightType string
	Nodes          []tsp.City
}

// Cities returns a copy of the node table.
func (in *Instance) Cities() []tsp.City {
	out := make([]tsp.City, len(in.Nodes))
	copy(out, in.Nodes)

	return out
}

// String implements fmt.Stringer.
func (in *Instance) String() string {
	name := in.Name
	if name == "" {
		name = "unnamed"
	}
	ewt := in.EdgeWeightType
	if ewt == "" {
		ewt = EdgeWeightEuc2D
	}

	return fmt.Sprintf("%s (%d cities, %s)", name, in.Dimension, ewt)
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	return inst, nil
}

// Parse reads a TSPLIB instance from r.
func Parse(r io.Reader) (*Instance, error) {
	var (
		inst      = &Instance{}
		sc        = bufio.NewScanner(r)
		lineNo    int
		line      string
		inSection bool
		city      tsp.City
		err       error
	)
	for sc.Scan() {
		lineNo++
		line = strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == keyEOF {
			break
		}
		if inSection && startsWithDigitOrSign(line) {
			if city, err = parseCoord(line); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			inst.Nodes = append(inst.Nodes, city)
			continue
		}
		inSection = false
		if err = inst.parseHeader(line); err != nil {
			return nil, errors.WithMessagef(err, "line %d", lineNo)
		}
		inSection = line == keyCoordSection
	}
	if err = sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read tsplib")
	}

	return inst, nil
}

// parseHeader applies one "KEY : value" line or a section marker.
func (in *Instance) parseHeader(line string) error {
	key, value, found := strings.Cut(line, ":")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if !found {
		switch {
		case key == keyCoordSection:
			return nil
		case strings.HasSuffix(key, "_SECTION"):
			return errors.Wrapf(ErrUnsupported, "section %s", key)
		default:
			return errors.Wrapf(ErrSyntax, "expected KEY : value, got %q", line)
		}
	}

	switch key {
	case keyName:
		in.Name = value
	case keyComment:
		if in.Comment != "" {
			in.Comment += "; "
		}
		in.Comment += value
	case keyType:
		if value != TypeTSP {
			return errors.Wrapf(ErrUnsupported, "type %s", value)
		}
		in.Type = value
	case keyDimension:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(ErrSyntax, "dimension %q", value)
		}
		in.Dimension = n
	case keyEdgeWeightType:
		if value != EdgeWeightEuc2D {
			return errors.Wrapf(ErrUnsupported, "edge weight type %s", value)
		}
		in.EdgeWeightType = value
	}

	return nil
}

// parseCoord reads an "id x y" row.
func parseCoord(line string) (tsp.City, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return tsp.City{}, errors.Wrapf(ErrSyntax, "coordinate row needs 3 fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return tsp.City{}, errors.Wrapf(ErrSyntax, "node id %q", fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return tsp.City{}, errors.Wrapf(ErrSyntax, "x coordinate %q", fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return tsp.City{}, errors.Wrapf(ErrSyntax, "y coordinate %q", fields[2])
	}

	return tsp.City{ID: id, X: x, Y: y}, nil
}

func startsWithDigitOrSign(s string) bool {
	c := s[0]

	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}
