package model_test

import (
	"slices"
	"testing"

	model "github.com/okian/ridequeue/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompareVisitors(t *testing.T) {
	Convey("Given pairs of visitors", t, func() {
		young := model.NewVisitor("1", "Zoe", 18, "A", "VIP")
		old := model.NewVisitor("2", "Adam", 40, "B", "Standard")

		Convey("Then age decides first", func() {
			So(model.CompareVisitors(young, old), ShouldBeLessThan, 0)
			So(model.CompareVisitors(old, young), ShouldBeGreaterThan, 0)
		})

		Convey("Then name breaks age ties ignoring case", func() {
			anna := model.NewVisitor("3", "anna", 22, "C", "VIP")
			jack := model.NewVisitor("4", "Jack", 22, "D", "Standard")
			So(model.CompareVisitors(anna, jack), ShouldBeLessThan, 0)
			So(model.CompareVisitors(jack, anna), ShouldBeGreaterThan, 0)
		})

		Convey("Then names differing only in case tie", func() {
			a := model.NewVisitor("5", "ANNA", 22, "E", "VIP")
			b := model.NewVisitor("6", "anna", 22, "F", "VIP")
			So(model.CompareVisitors(a, b), ShouldEqual, 0)
		})

		Convey("Then a prefix sorts before the longer name", func() {
			a := model.NewVisitor("7", "Ann", 22, "G", "VIP")
			b := model.NewVisitor("8", "anna", 22, "H", "VIP")
			So(model.CompareVisitors(a, b), ShouldBeLessThan, 0)
		})
	})
}

func TestCompareVisitors_StableSort(t *testing.T) {
	Convey("Given a history with exact ties", t, func() {
		history := []model.VisitorRecord{
			model.NewVisitor("V011", "Mike", 32, "VIS011", "Standard"),
			model.NewVisitor("V012", "anna", 22, "VIS012", "VIP"),
			model.NewVisitor("V013", "Jack", 22, "VIS013", "Standard"),
			model.NewVisitor("V014", "Anna", 22, "VIS014", "VIP"),
			model.NewVisitor("V015", "Chris", 25, "VIS015", "Standard"),
		}

		Convey("When sorted stably", func() {
			slices.SortStableFunc(history, model.CompareVisitors)

			Convey("Then ties keep their input order", func() {
				ids := make([]string, 0, len(history))
				for _, v := range history {
					ids = append(ids, v.VisitorID)
				}
				So(ids, ShouldResemble, []string{"VIS012", "VIS014", "VIS013", "VIS015", "VIS011"})
			})
		})
	})
}
