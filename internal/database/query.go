package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike 转义 LIKE 通配符，配合 ESCAPE '\' 使用
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains 生成"列包含子串"的查询条件，用户输入中的 % 和 _ 按字面匹配
func Contains(db *gorm.DB, column, value string) *gorm.DB {
	return db.Where(fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, column), "%"+EscapeLike(value)+"%")
}
