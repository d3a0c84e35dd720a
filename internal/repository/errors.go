package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在（包装 gorm.ErrRecordNotFound）
var ErrNotFound = fmt.Errorf("记录不存在: %w", gorm.ErrRecordNotFound)

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// as 生成带别名的表引用，如 "betting.game g"
func as(table, alias string) string {
	return table + " " + alias
}
