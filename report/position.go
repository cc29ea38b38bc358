package report

import "fmt"

// TextPosition marks a single location in a source file: a line and column,
// both one-indexed to match how editors display them.
type TextPosition struct {
	Line, Col int
}

// TextSpan is a range of source text, inclusive on both ends.
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// SpanOver returns the span that covers both of its arguments.
func SpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	}
	if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (ts *TextSpan) String() string {
	if ts == nil {
		return "?"
	}

	if ts.StartLine == ts.EndLine {
		return fmt.Sprintf("%d:%d-%d", ts.StartLine, ts.StartCol, ts.EndCol)
	}

	return fmt.Sprintf("%d:%d-%d:%d", ts.StartLine, ts.StartCol, ts.EndLine, ts.EndCol)
}
