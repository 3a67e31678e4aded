package fstab

import (
	"bytes"
	"io"
)

// Header returns the standard explanatory block written before the
// first entry of a generated fstab.
func Header() string {
	return "# /etc/fstab: static file system information\n" +
		"# generated by fstabgen\n" +
		"#\n" +
		"# <file system>\t<mount point>\t<type>\t<options>\t<dump>\t<pass>\n" +
		"\n"
}

type group struct {
	comment string
	entry   Entry
}

// Table is the assembled output: a header block followed by one
// comment+entry group per device. Append-only.
type Table struct {
	header string
	groups []group
}

// NewTable returns an empty table with the given header block.
func NewTable(header string) *Table {
	return &Table{header: header}
}

// Append adds one comment line and one entry to the table.
func (t *Table) Append(comment string, e Entry) {
	t.groups = append(t.groups, group{comment: comment, entry: e})
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.groups)
}

// Bytes renders the whole table.
func (t *Table) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(t.header)
	for _, g := range t.groups {
		buf.WriteString(g.comment)
		buf.WriteByte('\n')
		buf.WriteString(g.entry.Format())
		buf.WriteString("\n\n")
	}
	return buf.Bytes()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Bytes())
	return int64(n), err
}
