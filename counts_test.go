package qcircuit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCounts(t *testing.T) {
	Convey("Given some counts", t, func() {
		counts := Counts{"00": 10, "11": 30, "01": 30, "10": 30}

		Convey("Total should add every shot", func() {
			So(counts.Total(), ShouldEqual, 100)
		})

		Convey("Ties should break on the bit pattern", func() {
			best, n := counts.MostFrequent()
			So(best, ShouldEqual, "01")
			So(n, ShouldEqual, 30)

			sorted := counts.Sorted()
			So(sorted[3], ShouldResemble, Outcome{Bits: "00", Count: 10})
		})

		Convey("Probabilities should be relative frequencies", func() {
			probs := counts.Probabilities()
			So(probs["00"], ShouldAlmostEqual, 0.1, 1e-12)
			So(probs["11"], ShouldAlmostEqual, 0.3, 1e-12)
		})

		Convey("Merge should accumulate", func() {
			counts.Merge(Counts{"00": 5, "111": 1})
			So(counts["00"], ShouldEqual, 15)
			So(counts["111"], ShouldEqual, 1)
		})
	})

	Convey("Empty counts have no plurality", t, func() {
		best, n := Counts{}.MostFrequent()
		So(best, ShouldEqual, "")
		So(n, ShouldEqual, 0)
		So(Counts{}.Probabilities(), ShouldBeEmpty)
	})
}
