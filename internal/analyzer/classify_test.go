package analyzer

import (
	"testing"

	"boltzc/internal/model"
)

func binaryWords() *model.System {
	s := model.NewSystem()
	s.AddType("T", []model.Constructor{
		{Name: "Zero", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "T"}}},
		{Name: "One", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "T"}}},
		{Name: "Eps", Weight: 0},
	})
	return s
}

func motzkinTrees() *model.System {
	s := model.NewSystem()
	s.AddType("M", []model.Constructor{
		{Name: "Leaf", Weight: 1},
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}}},
		{Name: "Binary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}, {Kind: model.ArgType, Type: "M"}}},
	})
	return s
}

func TestClassifyBinaryWordsRational(t *testing.T) {
	res, err := Classify(binaryWords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Class != model.Rational {
		t.Fatalf("expected Rational, got %v", res.Class)
	}
}

func TestClassifyMotzkinAlgebraic(t *testing.T) {
	res, err := Classify(motzkinTrees())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Class != model.Algebraic {
		t.Fatalf("expected Algebraic (Binary has two non-atomic refs), got %v", res.Class)
	}
}

func TestClassifyDisconnectedRationalUnsupported(t *testing.T) {
	s := model.NewSystem()
	s.AddType("A", []model.Constructor{
		{Name: "AtomA", Weight: 1},
		{Name: "RecA", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "A"}}},
	})
	s.AddType("B", []model.Constructor{
		{Name: "AtomB", Weight: 1},
		{Name: "RecB", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "B"}}},
	})
	_, err := Classify(s)
	if err == nil {
		t.Fatalf("expected Unsupported error for disconnected components")
	}
}

func TestClassifyIsDeterministicAndIdempotent(t *testing.T) {
	s := binaryWords()
	r1, err1 := Classify(s)
	r2, err2 := Classify(s)
	if err1 != err2 && (err1 == nil) != (err2 == nil) {
		t.Fatalf("classification not idempotent on error: %v vs %v", err1, err2)
	}
	if r1.Class != r2.Class {
		t.Fatalf("classification not deterministic: %v vs %v", r1.Class, r2.Class)
	}
}

func TestSequenceOfAtomsSeqTypes(t *testing.T) {
	s := model.NewSystem()
	s.AddType("B", []model.Constructor{{Name: "b", Weight: 1}})
	s.AddType("A", []model.Constructor{{Name: "Seq", Args: []model.Argument{{Kind: model.ArgList, Type: "B"}}}})
	res, err := Classify(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Seq["B"] {
		t.Fatalf("expected B to be a sequence type")
	}
	if res.Class != model.Algebraic {
		t.Fatalf("expected Algebraic for a system with a List argument, got %v", res.Class)
	}
}
