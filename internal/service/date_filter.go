package service

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// 管理后台日期筛选的可选项。
const (
	DateAny       = ""
	DateToday     = "today"
	DatePast7Days = "past_7_days"
	DateThisMonth = "this_month"
	DateThisYear  = "this_year"
)

// DateChoices 按后台展示顺序列出日期筛选项。
var DateChoices = []string{DateToday, DatePast7Days, DateThisMonth, DateThisYear}

// TimeRange 是左闭右开的时间区间。
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains 判断 t 是否落在区间内。
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// UTC 把区间两端转换为 UTC，便于与存储值比较。
func (r TimeRange) UTC() TimeRange {
	return TimeRange{Start: r.Start.UTC(), End: r.End.UTC()}
}

// DayRange 返回 loc 时区下某一天的区间；日期不存在（如 2 月 30 日）时 ok 为 false。
func DayRange(year, month, day int, loc *time.Location) (TimeRange, bool) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if start.Year() != year || int(start.Month()) != month || start.Day() != day {
		return TimeRange{}, false
	}
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}, true
}

// HierarchyRange 根据年/月/日层级返回区间，month 或 day 为 0 表示不限。
func HierarchyRange(year, month, day int, loc *time.Location) (TimeRange, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if year <= 0 {
		return TimeRange{}, false
	}
	if month == 0 {
		if day != 0 {
			return TimeRange{}, false
		}
		start := now.With(time.Date(year, time.January, 1, 12, 0, 0, 0, loc)).BeginningOfYear()
		return TimeRange{Start: start, End: start.AddDate(1, 0, 0)}, true
	}
	if month < 1 || month > 12 {
		return TimeRange{}, false
	}
	if day == 0 {
		start := now.With(time.Date(year, time.Month(month), 1, 12, 0, 0, 0, loc)).BeginningOfMonth()
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}, true
	}
	return DayRange(year, month, day, loc)
}

// ChoiceRange 把筛选项换算成相对 at 的区间，未知或空选项返回 false。
func ChoiceRange(choice string, at time.Time, loc *time.Location) (TimeRange, bool) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.With(at.In(loc))
	today := local.BeginningOfDay()
	tomorrow := today.AddDate(0, 0, 1)

	switch strings.ToLower(strings.TrimSpace(choice)) {
	case DateToday:
		return TimeRange{Start: today, End: tomorrow}, true
	case DatePast7Days:
		return TimeRange{Start: today.AddDate(0, 0, -7), End: tomorrow}, true
	case DateThisMonth:
		start := local.BeginningOfMonth()
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}, true
	case DateThisYear:
		start := local.BeginningOfYear()
		return TimeRange{Start: start, End: start.AddDate(1, 0, 0)}, true
	default:
		return TimeRange{}, false
	}
}
