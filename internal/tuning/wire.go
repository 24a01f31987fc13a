package tuning

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"boltzc/internal/model"
)

// EncodeSpec renders s as the convex-program specification stream of
// spec.md §4.3: a header line [numTypes+numSeqTypes, numFreqs], the
// frequencies vector, then per declared type its constructor count and
// each constructor's [w, f_1..f_D, t_1..t_T, s_1..s_Sigma] vector, then a
// two-constructor SEQ(x) = 1 + x*SEQ(x) block per sequence type.
//
// It returns the ordered list of frequency-marked constructor names
// (freqOrder), the index into which every f vector is one-hot/weighted.
func EncodeSpec(s *model.System) ([]byte, []string, error) {
	seqTypes := orderedSeqTypes(s)

	var freqOrder []string
	var freqValues []float64
	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			if c.Marked() {
				freqOrder = append(freqOrder, c.Name)
				freqValues = append(freqValues, *c.Frequency)
			}
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d\n", len(s.Order)+len(seqTypes), len(freqOrder))
	for i, v := range freqValues {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%g", v)
	}
	buf.WriteByte('\n')

	writeConstructorVector := func(w int, freqName string, typeCounts map[string]int, seqCounts map[string]int) {
		fmt.Fprintf(&buf, "%d", w)
		for i := 0; i < len(freqOrder); i++ {
			f := 0.0
			if freqOrder[i] == freqName && freqName != "" {
				f = float64(w)
			}
			fmt.Fprintf(&buf, " %g", f)
		}
		for i := 0; i < len(s.Order); i++ {
			fmt.Fprintf(&buf, " %d", typeCounts[s.Order[i]])
		}
		for i := 0; i < len(seqTypes); i++ {
			fmt.Fprintf(&buf, " %d", seqCounts[seqTypes[i]])
		}
		buf.WriteByte('\n')
	}

	for _, name := range s.Order {
		cons := s.Types[name]
		fmt.Fprintf(&buf, "%d\n", len(cons))
		for _, c := range cons {
			typeCounts := make(map[string]int)
			seqCounts := make(map[string]int)
			for _, a := range c.Args {
				if a.Kind == model.ArgType {
					typeCounts[a.Type]++
				} else {
					seqCounts[a.Type]++
				}
			}
			writeConstructorVector(c.Weight, c.Name, typeCounts, seqCounts)
		}
	}

	for _, elem := range seqTypes {
		// SEQ(x) = 1 + x * SEQ(x): the "1" (terminal, no refs) and the
		// "x * SEQ(x)" (one element, then recurse on the sequence type
		// itself) alternatives, in that fixed order.
		fmt.Fprintf(&buf, "2\n")
		writeConstructorVector(0, "", nil, nil)
		writeConstructorVector(0, "", map[string]int{elem: 1}, map[string]int{elem: 1})
	}

	return buf.Bytes(), freqOrder, nil
}

// OrderedSeqTypes returns s's sequence-element types in s.Order's
// iteration order, the same ordering EncodeSpec uses to lay out the
// s_1..s_Sigma ref columns; DecodeSpec callers that want those columns
// resolved back to real type names pass this back in.
func OrderedSeqTypes(s *model.System) []string {
	return orderedSeqTypes(s)
}

func orderedSeqTypes(s *model.System) []string {
	seen := s.SeqTypes()
	var out []string
	for _, name := range s.Order {
		if seen[name] {
			out = append(out, name)
		}
	}
	return out
}

// DecodeSpec parses a spec stream produced by EncodeSpec back into a
// model.System, for the round-trip law of spec.md §8: types and
// their structural shape survive, including each constructor's weight,
// frequency mark and argument list (Kind and referenced type), modulo
// the annotations map (which the wire format does not carry at all) and
// constructor names (the wire format never names constructors, so
// decoded ones are synthesised).
//
// typeNames must be the caller's s.Order (the declared types, in EncodeSpec's
// order) and seqElemTypeNames must be OrderedSeqTypes(s) for that same s;
// the wire format is otherwise purely positional and has no other way to
// tell a declared type's t_i ref column, or a sequence type's s_j ref
// column, apart from the two slices that produced them.
func DecodeSpec(data []byte, typeNames []string, seqElemTypeNames []string) (*model.System, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	readLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of spec stream")
		}
		return sc.Text(), nil
	}

	header, err := readLine()
	if err != nil {
		return nil, err
	}
	headerFields := strings.Fields(header)
	if len(headerFields) != 2 {
		return nil, fmt.Errorf("malformed header: %q", header)
	}
	totalTypes, err := strconv.Atoi(headerFields[0])
	if err != nil {
		return nil, fmt.Errorf("malformed header count: %w", err)
	}
	numFreq, err := strconv.Atoi(headerFields[1])
	if err != nil {
		return nil, fmt.Errorf("malformed header freq count: %w", err)
	}
	valueTypeCount := len(typeNames)
	if totalTypes != valueTypeCount+len(seqElemTypeNames) {
		return nil, fmt.Errorf("header declares %d types, but %d type names + %d sequence names were given",
			totalTypes, valueTypeCount, len(seqElemTypeNames))
	}

	freqLine, err := readLine()
	if err != nil {
		return nil, fmt.Errorf("malformed frequency vector: %w", err)
	}
	var freqValues []float64
	for _, tok := range strings.Fields(freqLine) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed frequency value %q: %w", tok, err)
		}
		freqValues = append(freqValues, v)
	}
	if len(freqValues) != numFreq {
		return nil, fmt.Errorf("header declares %d frequencies, found %d", numFreq, len(freqValues))
	}

	s := model.NewSystem()

	for block := 0; block < totalTypes; block++ {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("malformed constructor count: %w", err)
		}

		real := block < valueTypeCount
		var typeName string
		var cons []model.Constructor
		if real {
			typeName = typeNames[block]
			cons = make([]model.Constructor, 0, count)
		}

		for i := 0; i < count; i++ {
			vecLine, err := readLine()
			if err != nil {
				return nil, err
			}
			if !real {
				continue
			}
			fields := strings.Fields(vecLine)
			if len(fields) != 1+numFreq+totalTypes {
				return nil, fmt.Errorf("constructor vector has %d fields, want %d", len(fields), 1+numFreq+totalTypes)
			}
			w, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("malformed weight: %w", err)
			}

			c := model.Constructor{Name: fmt.Sprintf("%s_c%d", typeName, i), Weight: w}
			for fi := 0; fi < numFreq; fi++ {
				v, err := strconv.ParseFloat(fields[1+fi], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed freq column: %w", err)
				}
				if v != 0 {
					freq := freqValues[fi]
					c.Frequency = &freq
				}
			}

			refs := fields[1+numFreq:]
			for ti := 0; ti < valueTypeCount; ti++ {
				n, err := strconv.Atoi(refs[ti])
				if err != nil {
					return nil, fmt.Errorf("malformed type-ref column: %w", err)
				}
				for k := 0; k < n; k++ {
					c.Args = append(c.Args, model.Argument{Kind: model.ArgType, Type: typeNames[ti]})
				}
			}
			for si, elem := range seqElemTypeNames {
				n, err := strconv.Atoi(refs[valueTypeCount+si])
				if err != nil {
					return nil, fmt.Errorf("malformed seq-ref column: %w", err)
				}
				for k := 0; k < n; k++ {
					c.Args = append(c.Args, model.Argument{Kind: model.ArgList, Type: elem})
				}
			}

			cons = append(cons, c)
		}

		if real {
			s.AddType(typeName, cons)
		}
	}

	return s, nil
}
