package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris4Term,
		TypeFlatTop,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if !almostEqual(v, w[len(w)-1-i], 1e-12) {
					t.Fatalf("symmetric window not mirrored at %d: %v vs %v", i, v, w[len(w)-1-i])
				}
			}
		})
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}

	checkGolden(t, Generate(TypeHann, 4, WithPeriodic()), []float64{0, 0.5, 1, 0.5}, 1e-12)
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}

	Apply(TypeHann, nil)
}

func TestMetadataMatchesCoefficients(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris4Term,
		TypeFlatTop,
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			m := Info(typ)
			w := Generate(typ, 8192, WithPeriodic())

			enbw, err := EquivalentNoiseBandwidth(w)
			if err != nil {
				t.Fatalf("EquivalentNoiseBandwidth error: %v", err)
			}
			if !almostEqual(enbw, m.ENBW, 1e-3) {
				t.Fatalf("ENBW=%v, metadata %v", enbw, m.ENBW)
			}

			cg, err := CoherentGain(w)
			if err != nil {
				t.Fatalf("CoherentGain error: %v", err)
			}
			if !almostEqual(cg, m.CoherentGain, 1e-6) {
				t.Fatalf("coherent gain=%v, metadata %v", cg, m.CoherentGain)
			}
		})
	}

	if m := Info(Type(99)); m.Name != "" {
		t.Fatalf("unknown type metadata = %#v", m)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"hann", TypeHann},
		{" Hanning ", TypeHann},
		{"HAMMING", TypeHamming},
		{"blackman", TypeBlackman},
		{"blackman-harris", TypeBlackmanHarris4Term},
		{"bh4", TypeBlackmanHarris4Term},
		{"flattop", TypeFlatTop},
		{"rect", TypeRectangular},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Parse(kaiser) error = %v, want ErrUnknownType", err)
	}
}

func TestTypeString(t *testing.T) {
	if got := TypeBlackmanHarris4Term.String(); got != "Blackman-Harris" {
		t.Fatalf("String() = %q", got)
	}
	if got := Type(42).String(); got != "Type(42)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	blackmanExpected := []float64{
		0.0, 0.09045342435412804, 0.45918295754596355, 0.9203636180999081,
		0.9203636180999083, 0.45918295754596383, 0.09045342435412812, 0.0,
	}
	bh4Expected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}
	flattopExpected := []float64{
		-0.0004210510000000013, -0.03684077608132298, 0.01070371671636002,
		0.7808739149387524, 0.7808739149387525, 0.010703716716360296,
		-0.03684077608132292, -0.0004210510000000013,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackman, 8), blackmanExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackmanHarris4Term, 8), bh4Expected, 1e-10)
	checkGolden(t, Generate(TypeFlatTop, 8), flattopExpected, 1e-8)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if got := Generate(TypeHann, 1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("single-sample hann = %v", got)
	}

	_, err := Hann(0)
	if err == nil {
		t.Fatal("expected size validation error")
	}

	_, err = EquivalentNoiseBandwidth(nil)
	if err == nil {
		t.Fatal("expected empty coeffs error")
	}

	_, err = EquivalentNoiseBandwidth([]float64{0, 0, 0})
	if err == nil {
		t.Fatal("expected zero coherent gain error")
	}

	_, err = CoherentGain(nil)
	if err == nil {
		t.Fatal("expected empty coeffs error")
	}

	err = ApplyCoefficientsInPlace([]float64{1, 2}, []float64{1})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
