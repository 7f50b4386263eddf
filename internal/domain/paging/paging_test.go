package paging_test

import (
	"testing"

	"github.com/okian/gradebook/internal/domain/paging"
	. "github.com/smartystreets/goconvey/convey"
)

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestWindow(t *testing.T) {
	Convey("Given 25 items and a limit of 10", t, func() {
		items := sequence(25)

		Convey("When requesting page 1", func() {
			p := paging.Window(items, 1, 10)

			Convey("Then it returns the first 10 items and 3 pages total", func() {
				So(len(p.Items), ShouldEqual, 10)
				So(p.Items[0], ShouldEqual, 1)
				So(p.Total, ShouldEqual, 25)
				So(p.Page, ShouldEqual, 1)
				So(p.Pages, ShouldEqual, 3)
			})
		})

		Convey("When requesting the last partial page", func() {
			p := paging.Window(items, 3, 10)

			Convey("Then it returns the remaining 5 items", func() {
				So(len(p.Items), ShouldEqual, 5)
				So(p.Items[0], ShouldEqual, 21)
				So(p.Items[4], ShouldEqual, 25)
				So(p.Pages, ShouldEqual, 3)
			})
		})

		Convey("When requesting a page past the end", func() {
			p := paging.Window(items, 9, 10)

			Convey("Then items are empty but the totals still describe the set", func() {
				So(p.Items, ShouldBeEmpty)
				So(p.Total, ShouldEqual, 25)
				So(p.Page, ShouldEqual, 9)
				So(p.Pages, ShouldEqual, 3)
			})
		})

		Convey("When the page number is zero or negative", func() {
			p := paging.Window(items, 0, 10)

			Convey("Then it is treated as page 1", func() {
				So(p.Page, ShouldEqual, 1)
				So(p.Items[0], ShouldEqual, 1)
			})
		})
	})

	Convey("Given an exact multiple of the limit", t, func() {
		p := paging.Window(sequence(20), 2, 10)

		Convey("Then no phantom page appears", func() {
			So(p.Pages, ShouldEqual, 2)
			So(len(p.Items), ShouldEqual, 10)
		})
	})

	Convey("Given no items", t, func() {
		p := paging.Window([]string{}, 1, 10)

		Convey("Then the window is empty with zero pages", func() {
			So(p.Items, ShouldBeEmpty)
			So(p.Total, ShouldEqual, 0)
			So(p.Pages, ShouldEqual, 0)
		})
	})
}
