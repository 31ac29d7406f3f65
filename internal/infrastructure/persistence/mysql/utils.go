package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突
// 用户邮箱、图书书名、分类名称的唯一性最终都由数据库索引保证，
// 仓储层据此把底层错误转换为对应的领域错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL错误码1062的报错信息："Duplicate entry 'xxx' for key 'yyy'"
	return strings.Contains(err.Error(), "Duplicate entry")
}
