package solving

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantileEstimator(t *testing.T) {
	Convey("Given a fresh estimator", t, func() {
		e := NewQuantileEstimator()

		Convey("With fewer than two samples the rank is the prior", func() {
			So(e.Quantile(42), ShouldEqual, 0.5)
			e.Insert(1.0)
			So(e.Quantile(42), ShouldEqual, 0.5)
		})

		Convey("Ranks interpolate between bracketing samples", func() {
			for _, score := range []float64{1, 2, 3, 4} {
				e.Insert(score)
			}
			// Raw rank of 2.5 is (1 + 0.5)/4 = 0.375, squashed by the
			// 1 - 1/4 confidence factor.
			So(e.Quantile(2.5), ShouldAlmostEqual, 0.40625)
		})

		Convey("Ranks stay within the unit interval", func() {
			for _, score := range []float64{5, -3, 12, 0.5, 7} {
				e.Insert(score)
			}
			for _, probe := range []float64{-100, -3, 0, 6, 12, 100} {
				q := e.Quantile(probe)
				So(q, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("A constant stream ranks near the prior", func() {
			for i := 0; i < 10; i++ {
				e.Insert(3.0)
			}
			So(e.Quantile(3.0), ShouldAlmostEqual, 0.5, 0.2)
		})

		Convey("The sample buffer reaps down to its cap", func() {
			for i := 0; i < 500; i++ {
				e.Insert(float64(i))
			}
			So(e.NumSamples(), ShouldBeLessThanOrEqualTo, quantileSampleLimit)
			So(e.Quantile(250), ShouldBeBetweenOrEqual, 0, 1)
		})
	})
}

func TestLearningUpdateBounds(t *testing.T) {
	Convey("The smoothed update keeps weights in (0, 1]", t, func() {
		w := 0.5
		for i := 0; i < 10000; i++ {
			q := float64(i%2) // alternate worst and best ranks
			w = (1-0.01)*w + 0.01*q
			So(w, ShouldBeGreaterThan, 0)
			So(w, ShouldBeLessThanOrEqualTo, 1)
		}
	})
}
