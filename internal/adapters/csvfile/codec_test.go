package csvfile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/okian/ridequeue/internal/adapters/csvfile"
	"github.com/okian/ridequeue/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func carousel() []model.VisitorRecord {
	return []model.VisitorRecord{
		model.NewVisitor("V027", "Lily", 8, "VIS027", "Standard"),
		model.NewVisitor("V028", "Lucas", 7, "VIS028", "Standard"),
		model.NewVisitor("V029", "Emma", 9, "VIS029", "VIP"),
	}
}

func TestEncodeDecodeLine(t *testing.T) {
	convey.Convey("Given a visitor record", t, func() {
		v := model.NewVisitor("V001", "Alice", 22, "VIS001", "Standard")

		convey.Convey("When encoded", func() {
			line := csvfile.EncodeLine(v)

			convey.Convey("Then the line has the fixed layout", func() {
				convey.So(line, convey.ShouldEqual, "Visitor,V001,Alice,22,VIS001,Standard")
			})

			convey.Convey("Then decoding yields an equal record", func() {
				got, err := csvfile.DecodeLine(line)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, v)
			})
		})
	})

	convey.Convey("Given malformed lines", t, func() {
		cases := map[string]string{
			"too few fields":  "Visitor,V1,Alice,22,VIS1",
			"too many fields": "Visitor,V1,Al,ice,22,VIS1,Standard",
			"wrong tag":       "Employee,V1,Alice,22,VIS1,Standard",
			"lowercase tag":   "visitor,V1,Alice,22,VIS1,Standard",
			"age not integer": "Visitor,V1,Al ice,notanumber,VIS1,Standard",
			"age decimal":     "Visitor,V1,Alice,22.5,VIS1,Standard",
		}

		convey.Convey("Then each is rejected as malformed", func() {
			for _, line := range cases {
				_, err := csvfile.DecodeLine(line)
				convey.So(err, convey.ShouldWrap, csvfile.ErrMalformedRecord)
			}
		})
	})

	convey.Convey("Given a line with an empty membership type", t, func() {
		got, err := csvfile.DecodeLine("Visitor,V1,Alice,22,VIS1,")

		convey.Convey("Then it still has six fields and decodes", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.MembershipType, convey.ShouldEqual, "")
		})
	})
}

func TestWriteRead(t *testing.T) {
	convey.Convey("Given some history records", t, func() {
		records := carousel()

		convey.Convey("When written to a buffer", func() {
			var buf bytes.Buffer
			n, err := csvfile.Write(&buf, slices.Values(records))

			convey.Convey("Then the output is header plus one line per record", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 3)
				convey.So(buf.String(), convey.ShouldEqual, csvfile.Header+"\n"+
					"Visitor,V027,Lily,8,VIS027,Standard\n"+
					"Visitor,V028,Lucas,7,VIS028,Standard\n"+
					"Visitor,V029,Emma,9,VIS029,VIP\n")
			})

			convey.Convey("Then reading it back reconstructs the records in order", func() {
				var got []model.VisitorRecord
				res, err := csvfile.Read(&buf, func(v model.VisitorRecord) { got = append(got, v) })
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Imported, convey.ShouldEqual, 3)
				convey.So(res.Skipped, convey.ShouldBeEmpty)
				convey.So(got, convey.ShouldResemble, records)
			})
		})
	})

	convey.Convey("Given input with malformed and blank lines", t, func() {
		input := strings.Join([]string{
			"anything at all",
			"Visitor,V1,Alice,22,VIS1,Standard",
			"Visitor,V1,Al ice,notanumber,VIS1,Standard",
			"",
			"   Visitor,V2,Bob,25,VIS2,VIP   ",
			"garbage",
			"Visitor,V3,Cara,30,VIS3,Standard",
		}, "\n")

		convey.Convey("When read", func() {
			var got []string
			res, err := csvfile.Read(strings.NewReader(input), func(v model.VisitorRecord) {
				got = append(got, v.VisitorID)
			})

			convey.Convey("Then only well-formed lines are delivered", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Imported, convey.ShouldEqual, 3)
				convey.So(got, convey.ShouldResemble, []string{"VIS1", "VIS2", "VIS3"})
			})

			convey.Convey("Then skipped lines carry their line numbers", func() {
				convey.So(len(res.Skipped), convey.ShouldEqual, 2)
				convey.So(res.Skipped[0].Line, convey.ShouldEqual, 3)
				convey.So(res.Skipped[1].Line, convey.ShouldEqual, 6)
				convey.So(res.Skipped[1].Text, convey.ShouldEqual, "garbage")
				convey.So(errors.Is(res.Skipped[0], csvfile.ErrMalformedRecord), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a malformed line longer than any scanner buffer", t, func() {
		long := "Visitor,V2," + strings.Repeat("x", 70_000) + ",notanumber,VIS2,Standard"
		input := strings.Join([]string{
			csvfile.Header,
			"Visitor,V1,Alice,22,VIS1,Standard",
			long,
			"Visitor,V3,Cara,30,VIS3,Standard",
		}, "\n")

		convey.Convey("When read", func() {
			var got []string
			res, err := csvfile.Read(strings.NewReader(input), func(v model.VisitorRecord) {
				got = append(got, v.VisitorID)
			})

			convey.Convey("Then the long line is skipped and reading continues", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Imported, convey.ShouldEqual, 2)
				convey.So(got, convey.ShouldResemble, []string{"VIS1", "VIS3"})
				convey.So(len(res.Skipped), convey.ShouldEqual, 1)
				convey.So(res.Skipped[0].Line, convey.ShouldEqual, 3)
				convey.So(res.Skipped[0].Err, convey.ShouldWrap, csvfile.ErrMalformedRecord)
			})
		})
	})

	convey.Convey("Given a long valid record without a trailing newline", t, func() {
		name := strings.Repeat("n", 100_000)
		input := csvfile.Header + "\nVisitor,V1," + name + ",22,VIS1,Standard"

		convey.Convey("Then it is imported whole", func() {
			var got []model.VisitorRecord
			res, err := csvfile.Read(strings.NewReader(input), func(v model.VisitorRecord) { got = append(got, v) })
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Imported, convey.ShouldEqual, 1)
			convey.So(got[0].Name, convey.ShouldEqual, name)
		})
	})

	convey.Convey("Given an empty input", t, func() {
		res, err := csvfile.Read(strings.NewReader(""), func(model.VisitorRecord) {})

		convey.Convey("Then nothing is imported", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Imported, convey.ShouldEqual, 0)
		})
	})
}

func TestFiles(t *testing.T) {
	convey.Convey("Given a temp directory", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "history.csv")

		convey.Convey("When records are written and read back", func() {
			n, err := csvfile.WriteFile(path, slices.Values(carousel()))
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, 3)

			var got []model.VisitorRecord
			res, err := csvfile.ReadFile(path, func(v model.VisitorRecord) { got = append(got, v) })

			convey.Convey("Then the round trip is field-equal", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Imported, convey.ShouldEqual, 3)
				convey.So(got, convey.ShouldResemble, carousel())
			})
		})

		convey.Convey("When writing over an existing file", func() {
			convey.So(os.WriteFile(path, []byte(strings.Repeat("stale line\n", 50)), 0o600), convey.ShouldBeNil)
			_, err := csvfile.WriteFile(path, slices.Values(carousel()[:1]))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the file is truncated", func() {
				data, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, csvfile.Header+"\nVisitor,V027,Lily,8,VIS027,Standard\n")
			})
		})

		convey.Convey("When the target directory does not exist", func() {
			_, err := csvfile.WriteFile(filepath.Join(dir, "missing", "out.csv"), slices.Values(carousel()))

			convey.Convey("Then ErrIO is returned", func() {
				convey.So(errors.Is(err, csvfile.ErrIO), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When reading a path that does not exist", func() {
			called := false
			_, err := csvfile.ReadFile(filepath.Join(dir, "nope.csv"), func(model.VisitorRecord) { called = true })

			convey.Convey("Then ErrNotFound is returned and nothing is delivered", func() {
				convey.So(errors.Is(err, csvfile.ErrNotFound), convey.ShouldBeTrue)
				convey.So(called, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When reading a directory", func() {
			_, err := csvfile.ReadFile(dir, func(model.VisitorRecord) {})

			convey.Convey("Then ErrNotFound is returned", func() {
				convey.So(errors.Is(err, csvfile.ErrNotFound), convey.ShouldBeTrue)
			})
		})
	})
}
