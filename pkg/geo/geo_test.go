package geo

import (
	"errors"
	"math"
	"testing"
)

func TestPointValidate(t *testing.T) {
	cases := []struct {
		name    string
		point   Point
		wantErr bool
	}{
		{"valid campus point", Point{Lat: -0.3918, Lon: 36.9630}, false},
		{"poles are valid", Point{Lat: 90, Lon: 0}, false},
		{"date line is valid", Point{Lat: 0, Lon: -180}, false},
		{"latitude too large", Point{Lat: 90.1, Lon: 0}, true},
		{"latitude too small", Point{Lat: -91, Lon: 0}, true},
		{"longitude too large", Point{Lat: 0, Lon: 180.5}, true},
		{"longitude too small", Point{Lat: 0, Lon: -200}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.point.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidCoordinate) {
				t.Fatalf("Validate() = %v; want ErrInvalidCoordinate", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Validate() = %v; want nil", err)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	// Reference values computed with Vincenty's inverse formula on WGS-84.
	cases := []struct {
		name      string
		a, b      Point
		want      float64
		tolerance float64
	}{
		{
			name:      "main gate to library",
			a:         Point{Lat: -0.3918, Lon: 36.9630},
			b:         Point{Lat: -0.3925, Lon: 36.9635},
			want:      95.336,
			tolerance: 0.05,
		},
		{
			name:      "library to engineering block",
			a:         Point{Lat: -0.3925, Lon: 36.9635},
			b:         Point{Lat: -0.3928, Lon: 36.9632},
			want:      47.070,
			tolerance: 0.05,
		},
		{
			name:      "administration block to student center",
			a:         Point{Lat: -0.3920, Lon: 36.9638},
			b:         Point{Lat: -0.3922, Lon: 36.9640},
			want:      31.380,
			tolerance: 0.05,
		},
		{
			name:      "tokyo skytree to sapporo tv tower",
			a:         Point{Lat: 35.7100069, Lon: 139.8108103},
			b:         Point{Lat: 43.061092, Lon: 141.356433},
			want:      826887.932,
			tolerance: 1.0,
		},
		{
			name:      "coincident points",
			a:         Point{Lat: -0.3918, Lon: 36.9630},
			b:         Point{Lat: -0.3918, Lon: 36.9630},
			want:      0,
			tolerance: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Distance(tc.a, tc.b)
			if err != nil {
				t.Fatalf("Distance() returned error: %v", err)
			}
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Fatalf("Distance() = %.3f; want %.3f ± %.3f", got, tc.want, tc.tolerance)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Point{Lat: -0.3918, Lon: 36.9630}
	b := Point{Lat: -0.3922, Lon: 36.9640}

	ab, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance(a, b) returned error: %v", err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatalf("Distance(b, a) returned error: %v", err)
	}

	if math.Abs(ab-ba) > 1e-6*ab {
		t.Fatalf("Distance not symmetric: a->b = %v, b->a = %v", ab, ba)
	}
}

func TestDistanceInvalidInput(t *testing.T) {
	valid := Point{Lat: 0, Lon: 0}
	invalid := Point{Lat: 120, Lon: 0}

	if _, err := Distance(invalid, valid); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("Distance(invalid, valid) = %v; want ErrInvalidCoordinate", err)
	}
	if _, err := Distance(valid, invalid); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("Distance(valid, invalid) = %v; want ErrInvalidCoordinate", err)
	}
}

func TestBoundsContains(t *testing.T) {
	campus := Bounds{
		Min: Point{Lat: -0.3950, Lon: 36.9600},
		Max: Point{Lat: -0.3900, Lon: 36.9700},
	}

	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{Lat: -0.3925, Lon: 36.9635}, true},
		{"on the edge", Point{Lat: -0.3950, Lon: 36.9650}, true},
		{"north of campus", Point{Lat: -0.3890, Lon: 36.9650}, false},
		{"west of campus", Point{Lat: -0.3925, Lon: 36.9590}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := campus.Contains(tc.point); got != tc.want {
				t.Fatalf("Contains(%v) = %v; want %v", tc.point, got, tc.want)
			}
		})
	}
}
