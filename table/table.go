package table

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Kind 列的语义类型。
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindDateTime
	KindIntNullable
)

// Column 一列的名称与语义类型。
type Column struct {
	Name string
	Kind Kind
}

// Schema 有序列集合。
type Schema []Column

// Table 内存中的表格结果。
// 说明：行内单元格已按列类型归一（KindString→string、KindBool→bool、
// KindDateTime→time.Time、KindIntNullable→*int64），空表仍保留完整列集合。
type Table struct {
	Schema Schema
	Rows   [][]any
}

// New 按列模式创建空表。
func New(schema Schema) *Table { return &Table{Schema: schema} }

// NumRows 返回行数。
func (t *Table) NumRows() int { return len(t.Rows) }

// Append 追加一行；cells 按列名取值，缺失或类型不符的单元格取该列零值。
func (t *Table) Append(cells map[string]any) {
	row := make([]any, len(t.Schema))
	for i, c := range t.Schema {
		row[i] = coerce(c.Kind, cells[c.Name])
	}
	t.Rows = append(t.Rows, row)
}

// Column 返回指定名称列的全部单元格。
func (t *Table) Column(name string) ([]any, bool) {
	for i, c := range t.Schema {
		if c.Name == name {
			out := make([]any, 0, len(t.Rows))
			for _, row := range t.Rows {
				out = append(out, row[i])
			}
			return out, true
		}
	}
	return nil, false
}

// Render 渲染为文本表格。
func (t *Table) Render(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetBorder(false)
	headers := make([]string, len(t.Schema))
	for i, c := range t.Schema {
		headers[i] = c.Name
	}
	tw.SetHeader(headers)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}

// coerce 将任意取值归一为列类型对应的 Go 表示。
func coerce(k Kind, v any) any {
	switch k {
	case KindBool:
		switch x := v.(type) {
		case bool:
			return x
		case string:
			b, _ := strconv.ParseBool(x)
			return b
		default:
			return false
		}
	case KindDateTime:
		switch x := v.(type) {
		case time.Time:
			return x
		case string:
			return parseTime(x)
		default:
			return time.Time{}
		}
	case KindIntNullable:
		switch x := v.(type) {
		case nil:
			return (*int64)(nil)
		case *int64:
			return x
		case int64:
			return &x
		case int:
			n := int64(x)
			return &n
		case float64:
			n := int64(x)
			return &n
		default:
			return (*int64)(nil)
		}
	default:
		switch x := v.(type) {
		case nil:
			return ""
		case string:
			return x
		default:
			return fmt.Sprint(x)
		}
	}
}

// parseTime 宽松解析远端返回的 UTC 时间串，失败返回零值。
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, l := range layouts {
		if ts, err := time.Parse(l, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(time.RFC3339)
	case *int64:
		if x == nil {
			return ""
		}
		return strconv.FormatInt(*x, 10)
	default:
		return fmt.Sprint(x)
	}
}
