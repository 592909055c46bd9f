// Package swap derives a full single-swap quote, dependent amount and
// validation state from explicit user inputs and a reserve snapshot.
package swap

import "fmt"

// Field identifies a logical slot being edited. Single swaps use Input and
// Output; batch swaps use Input plus a contiguous run of numbered outputs.
type Field int

const (
	// FieldInput is the spend side.
	FieldInput Field = iota
	// FieldOutput is the receive side of a single swap.
	FieldOutput
	// fieldBatchBase anchors the numbered batch outputs.
	fieldBatchBase
)

// BatchOutput returns the field for the i-th batch output slot (1-based).
func BatchOutput(i int) Field {
	if i < 1 {
		panic(fmt.Sprintf("batch output index must be >= 1, got %d", i))
	}
	return fieldBatchBase + Field(i-1)
}

// BatchIndex returns the 1-based slot number of a batch output field.
func (f Field) BatchIndex() (int, bool) {
	if f < fieldBatchBase {
		return 0, false
	}
	return int(f-fieldBatchBase) + 1, true
}

func (f Field) String() string {
	switch f {
	case FieldInput:
		return "INPUT"
	case FieldOutput:
		return "OUTPUT"
	}
	if i, ok := f.BatchIndex(); ok {
		return fmt.Sprintf("OUTPUT_%d", i)
	}
	return fmt.Sprintf("Field(%d)", int(f))
}
