package shape

import (
	"errors"
	"math"
	"testing"
)

func TestTextTargets_Count(t *testing.T) {
	opts := DefaultOptions()
	lit := len(litPixels(Rasterize("HELLO"), opts.Stride, opts.Threshold))
	if lit == 0 {
		t.Fatal("expected HELLO to light some pixels")
	}

	tests := []struct {
		name string
		n    int
	}{
		{"Fewer than pixels", lit / 3},
		{"Exactly pixels", lit},
		{"More than pixels", lit*2 + 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := TextTargets("HELLO", tt.n, opts)
			if err != nil {
				t.Fatalf("TextTargets: %v", err)
			}
			if len(pts) != tt.n {
				t.Errorf("got %d points; want %d", len(pts), tt.n)
			}
		})
	}
}

func TestTextTargets_Centred(t *testing.T) {
	opts := DefaultOptions()
	img := Rasterize("SWARM")
	b := img.Bounds()
	halfW := float64(b.Dx())/2*opts.Scale + opts.Jitter
	halfH := float64(b.Dy())/2*opts.Scale + opts.Jitter

	pts, err := TextTargets("SWARM", 800, opts)
	if err != nil {
		t.Fatal(err)
	}
	sumX := 0.0
	for _, p := range pts {
		if math.Abs(p.X) > halfW || math.Abs(p.Y) > halfH || math.Abs(p.Z) > opts.Depth {
			t.Fatalf("point %v outside the text box", p)
		}
		sumX += p.X
	}
	if mean := sumX / float64(len(pts)); math.Abs(mean) > halfW/4 {
		t.Errorf("points are not centred, mean X %v", mean)
	}
}

func TestTextTargets_LongTextFitsExtent(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxExtent = 360

	tests := []string{"GENERATIVE ART", "A MUCH LONGER LINE OF TEXT THAN FITS", "TWO\nLINES OF TEXT HERE"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			pts, err := TextTargets(text, 600, opts)
			if err != nil {
				t.Fatal(err)
			}
			var widest float64
			for _, p := range pts {
				if math.Abs(p.X) > opts.MaxExtent || math.Abs(p.Y) > opts.MaxExtent || math.Abs(p.Z) > opts.MaxExtent {
					t.Fatalf("point %v outside ±%v", p, opts.MaxExtent)
				}
				widest = math.Max(widest, math.Abs(p.X))
			}
			// scaled down, not cropped: the text still spans most of the room
			if widest < opts.MaxExtent/2 {
				t.Errorf("widest point %v; text shrank too much", widest)
			}
		})
	}
}

func TestTextTargets_ShortTextKeepsScale(t *testing.T) {
	limited := DefaultOptions()
	free := DefaultOptions()
	free.MaxExtent = 0

	a, err := TextTargets("GO", 200, limited)
	if err != nil {
		t.Fatal(err)
	}
	b, err := TextTargets("GO", 200, free)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			t.Fatalf("point %d: %v with limit, %v without", i, a[i], b[i])
		}
	}
}

func TestTextTargets_Deterministic(t *testing.T) {
	a, err := TextTargets("GO", 300, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := TextTargets("GO", 300, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			t.Fatalf("point %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTextTargets_Errors(t *testing.T) {
	opts := DefaultOptions()
	if _, err := TextTargets("HI", 0, opts); err == nil {
		t.Error("expected an error for n == 0")
	}
	if _, err := TextTargets("   ", 10, opts); !errors.Is(err, ErrEmptyText) {
		t.Errorf("blank text error = %v; want ErrEmptyText", err)
	}
	opts.Threshold = 255
	opts.Stride = 1000
	if _, err := TextTargets(".", 10, opts); !errors.Is(err, ErrEmptyShape) {
		t.Errorf("unlit text error = %v; want ErrEmptyShape", err)
	}
}

func TestRasterize_Multiline(t *testing.T) {
	one := Rasterize("AB")
	two := Rasterize("AB\nCD")
	if two.Bounds().Dy() != 2*one.Bounds().Dy() {
		t.Errorf("two lines height %d; want %d", two.Bounds().Dy(), 2*one.Bounds().Dy())
	}
}
