package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument 请求参数非法（handler 映射为 400）
var ErrInvalidArgument = errors.New("参数非法")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

const dateLayout = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD，返回该日 UTC 零点
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, invalidf("日期格式应为 YYYY-MM-DD: %q", s)
	}
	return d, nil
}

// dayRange 返回 t 所在 UTC 日的 [零点, 次日零点)
func dayRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// normalizePage 与仓储层分页规则一致：page<=0 → 1；pageSize 不在 (0,100] → 20
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
