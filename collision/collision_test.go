package collision

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCollides(t *testing.T) {
	cases := []struct {
		name string
		a    cp.Vector
		ra   float64
		b    cp.Vector
		rb   float64
		want bool
	}{
		{"overlap", cp.Vector{X: 0, Y: 0}, 1, cp.Vector{X: 1.5, Y: 0}, 1, true},
		{"touching_is_not_collision", cp.Vector{X: 0, Y: 0}, 1, cp.Vector{X: 2, Y: 0}, 1, false},
		{"apart", cp.Vector{X: 0, Y: 0}, 1, cp.Vector{X: 5, Y: 5}, 1, false},
		{"same_center", cp.Vector{X: 3, Y: 3}, 0.1, cp.Vector{X: 3, Y: 3}, 0.1, true},
		{"zero_radii", cp.Vector{X: 3, Y: 3}, 0, cp.Vector{X: 3, Y: 3}, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Collides(c.a, c.ra, c.b, c.rb); got != c.want {
				t.Fatalf("Collides = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCollidesSymmetric(t *testing.T) {
	points := []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: -3, Y: 2}, {X: 0.7, Y: -0.7}, {X: 10, Y: 10}}
	radii := []float64{0, 0.25, 0.5, 1, 3}
	for _, a := range points {
		for _, b := range points {
			for _, ra := range radii {
				for _, rb := range radii {
					if Collides(a, ra, b, rb) != Collides(b, rb, a, ra) {
						t.Fatalf("asymmetric for a=%v ra=%v b=%v rb=%v", a, ra, b, rb)
					}
				}
			}
		}
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	origin := cp.Vector{X: 0, Y: 0}
	dir := cp.Vector{X: 10, Y: 0}
	cases := []struct {
		name string
		p    cp.Vector
		want cp.Vector
	}{
		{"inside", cp.Vector{X: 4, Y: 3}, cp.Vector{X: 4, Y: 0}},
		{"behind_origin", cp.Vector{X: -2, Y: 1}, cp.Vector{X: 0, Y: 0}},
		{"past_end", cp.Vector{X: 25, Y: -1}, cp.Vector{X: 20, Y: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClosestPointOnSegment(c.p, origin, dir, 20)
			if got.Distance(c.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestSegmentHitBeamScenario(t *testing.T) {
	origin := cp.Vector{X: 0, Y: 0}
	toward := cp.Vector{X: 10, Y: 0}
	cases := []struct {
		name   string
		target cp.Vector
		radius float64
		want   bool
	}{
		{"grazing_target_hit", cp.Vector{X: 8, Y: 0.3}, 0.3, true},
		{"offset_target_miss", cp.Vector{X: 8, Y: 1.0}, 0.3, false},
		{"beyond_length_miss", cp.Vector{X: 21, Y: 0}, 0.3, false},
		{"behind_origin_miss", cp.Vector{X: -1, Y: 0}, 0.3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SegmentHit(origin, toward, 20, 0.4, c.target, c.radius); got != c.want {
				t.Fatalf("SegmentHit = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSegmentHitZeroLength(t *testing.T) {
	if SegmentHit(cp.Vector{}, cp.Vector{X: 1}, 0, 1, cp.Vector{}, 1) {
		t.Fatalf("a retracted beam must not hit")
	}
}
