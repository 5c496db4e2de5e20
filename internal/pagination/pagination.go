// Package pagination 把任意长度的结果集切成固定大小的页。
// 页码解析是宽松的：缺失或非法值落在第一页，超出范围落在最后一页。
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// 列表页的默认每页条数。
const (
	PublicPerPage = 3
	AdminPerPage  = 20
)

// Paginator 描述一次分页的总量与每页大小。
type Paginator struct {
	count   int64
	perPage int
}

// New 创建分页器，perPage 非正时按 1 处理。
func New(count int64, perPage int) Paginator {
	if perPage <= 0 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return Paginator{count: count, perPage: perPage}
}

// NumPages 返回总页数，空结果集也有一页。
func (p Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return int((p.count + int64(p.perPage) - 1) / int64(p.perPage))
}

// Page 解析原始页码字符串并返回对应页。
// 超出 int 范围的正整数视为超出末页。
func (p Paginator) Page(raw string) Page {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	switch {
	case err == nil:
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(trimmed, "-"):
		n = p.NumPages()
	default:
		n = 1
	}
	return p.PageNumber(n)
}

// PageNumber 返回第 n 页，n 会被夹在 [1, NumPages] 之间。
func (p Paginator) PageNumber(n int) Page {
	last := p.NumPages()
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}
	return Page{
		Number:   n,
		NumPages: last,
		Count:    p.count,
		PerPage:  p.perPage,
	}
}

// Page 是分页结果的元数据，模板直接读取这些字段。
type Page struct {
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

// Offset 返回该页第一条记录在结果集中的偏移量。
func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

// Limit 返回查询时使用的条数上限。
func (pg Page) Limit() int {
	return pg.PerPage
}

func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg Page) HasPrevious() bool {
	return pg.Number > 1
}

func (pg Page) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

// NextNumber 返回下一页页码，没有下一页时返回当前页。
func (pg Page) NextNumber() int {
	if pg.HasNext() {
		return pg.Number + 1
	}
	return pg.Number
}

// PreviousNumber 返回上一页页码，没有上一页时返回当前页。
func (pg Page) PreviousNumber() int {
	if pg.HasPrevious() {
		return pg.Number - 1
	}
	return pg.Number
}

// StartIndex 返回该页第一条记录的序号（从 1 开始），空结果集为 0。
func (pg Page) StartIndex() int64 {
	if pg.Count == 0 {
		return 0
	}
	return int64(pg.Offset()) + 1
}

// EndIndex 返回该页最后一条记录的序号。
func (pg Page) EndIndex() int64 {
	if pg.Count == 0 {
		return 0
	}
	end := int64(pg.Number) * int64(pg.PerPage)
	if end > pg.Count {
		end = pg.Count
	}
	return end
}

// Slice 对内存中的切片分页，返回当前页的元素与页信息。
func Slice[T any](items []T, perPage int, raw string) ([]T, Page) {
	page := New(int64(len(items)), perPage).Page(raw)
	start := page.Offset()
	if start >= len(items) {
		return []T{}, page
	}
	end := start + page.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page
}
