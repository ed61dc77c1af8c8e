package domain

import "github.com/dustin/go-humanize"

// Grouped renders the amount with thousands separators, e.g. 1,550,000
func (w Won) Grouped() string {
	return humanize.Comma(int64(w))
}

// String renders the amount the way the worksheet displays it: 25,500원
func (w Won) String() string {
	return w.Grouped() + "원"
}
