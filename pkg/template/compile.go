package template

import "fmt"

// Compile splits a template into its ordered segments.
//
// The scan is rune-wise so multi-byte text around and inside delimiters is
// handled correctly. An empty input yields no segments; an input without
// delimiters yields a single static segment equal to the whole input.
// Adjacent expressions ("{{a}}{{b}}") yield two dynamic segments with no
// empty static segment between them.
func Compile(input string) []Segment {
	runes := []rune(input)

	var segments []Segment
	pos := 0
	for pos < len(runes) {
		var (
			seg  Segment
			skip int
		)
		if openDelimAt(runes, pos) {
			seg, skip = scanDynamic(runes, pos)
		} else {
			seg, skip = scanStatic(runes, pos)
		}

		// Every step must consume input, otherwise the scan would spin
		// forever. Unreachable with the branches above; a zero here is a
		// compiler bug, not bad input.
		if skip == 0 {
			panic(fmt.Sprintf("template: scanner stalled at position %d of %q", pos, input))
		}

		segments = append(segments, seg)
		pos += skip
	}
	return segments
}

// scanDynamic consumes one {{...}} span starting at pos, which must be an
// opening delimiter. The expression runs until the first }} pair; if none
// exists it runs to end of input.
func scanDynamic(runes []rune, pos int) (Segment, int) {
	end := pos + 2
	for end < len(runes) && !closeDelimAt(runes, end) {
		end++
	}

	expr := string(runes[pos+2 : end])
	if end >= len(runes) {
		// Unterminated expression: everything after {{ is the source.
		return Segment{Kind: SegmentDynamic, Text: expr}, len(runes) - pos
	}
	// Inner length plus both delimiter pairs, counted in runes.
	return Segment{Kind: SegmentDynamic, Text: expr}, (end - pos) + 2
}

// scanStatic consumes literal text starting at pos, which must not be an
// opening delimiter, up to the next {{ or end of input.
func scanStatic(runes []rune, pos int) (Segment, int) {
	end := pos
	for end < len(runes) && !openDelimAt(runes, end) {
		end++
	}
	return Segment{Kind: SegmentStatic, Text: string(runes[pos:end])}, end - pos
}

func openDelimAt(runes []rune, pos int) bool {
	return pos+1 < len(runes) && runes[pos] == '{' && runes[pos+1] == '{'
}

func closeDelimAt(runes []rune, pos int) bool {
	return pos+1 < len(runes) && runes[pos] == '}' && runes[pos+1] == '}'
}
