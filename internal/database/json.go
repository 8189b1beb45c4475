package database

import (
	"fmt"

	"gorm.io/gorm"
)

// JSONArrayContains 生成"JSON数组列包含某个整数"的查询条件
//
// postgres 使用 jsonb 的 @> 运算符，sqlite 使用 json_each。
func JSONArrayContains(db *gorm.DB, column string, value int64) *gorm.DB {
	switch db.Dialector.Name() {
	case "postgres":
		return db.Where(fmt.Sprintf("%s @> ?::jsonb", column), fmt.Sprintf("[%d]", value))
	default:
		return db.Where(fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", column), value)
	}
}
