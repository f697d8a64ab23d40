package table

import (
	"bytes"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func testSchema() Schema {
	return Schema{
		{Name: "Name", Kind: KindString},
		{Name: "Enabled", Kind: KindBool},
		{Name: "Created", Kind: KindDateTime},
		{Name: "Interval", Kind: KindIntNullable},
	}
}

func TestTable_Append(t *testing.T) {
	Convey("Append should coerce cells to the column kinds", t, func() {
		tb := New(testSchema())
		tb.Append(map[string]any{
			"Name":     "daily",
			"Enabled":  true,
			"Created":  "2024-04-28T06:35:00.7345292Z",
			"Interval": float64(15),
		})
		So(tb.NumRows(), ShouldEqual, 1)

		created, _ := tb.Column("Created")
		ts, ok := created[0].(time.Time)
		So(ok, ShouldBeTrue)
		So(ts.UTC().Format("2006-01-02"), ShouldEqual, "2024-04-28")

		iv, _ := tb.Column("Interval")
		n, ok := iv[0].(*int64)
		So(ok, ShouldBeTrue)
		So(*n, ShouldEqual, 15)
	})

	Convey("missing cells should map to the column zero value", t, func() {
		tb := New(testSchema())
		tb.Append(map[string]any{"Name": "x"})

		enabled, _ := tb.Column("Enabled")
		So(enabled[0], ShouldBeFalse)
		created, _ := tb.Column("Created")
		So(created[0].(time.Time).IsZero(), ShouldBeTrue)
		iv, _ := tb.Column("Interval")
		So(iv[0].(*int64), ShouldBeNil)
	})

	Convey("an empty table keeps the full declared column set", t, func() {
		tb := New(testSchema())
		So(tb.NumRows(), ShouldEqual, 0)
		So(len(tb.Schema), ShouldEqual, 4)
		_, ok := tb.Column("Interval")
		So(ok, ShouldBeTrue)
	})
}

func TestTable_Render(t *testing.T) {
	Convey("Render should print headers and formatted cells", t, func() {
		tb := New(testSchema())
		tb.Append(map[string]any{"Name": "daily", "Enabled": true, "Created": "2024-04-28T00:00:00Z"})

		buf := &bytes.Buffer{}
		tb.Render(buf)
		out := buf.String()
		So(out, ShouldContainSubstring, "NAME")
		So(out, ShouldContainSubstring, "daily")
		So(out, ShouldContainSubstring, "true")
		So(out, ShouldContainSubstring, "2024-04-28")
	})
}
