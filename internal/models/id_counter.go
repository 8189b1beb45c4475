package models

// IdCounter 外部ID计数器，每个业务实体一行
type IdCounter struct {
	BaseModel
	Name  string `gorm:"column:name;uniqueIndex;size:50;not null"`
	Value int64  `gorm:"column:value;not null"`
}

func (c *IdCounter) TableName() string {
	return "id_counters"
}

// 计数器名称
const (
	CounterUser   = "userId"
	CounterRole   = "roleId"
	CounterMenu   = "menuId"
	CounterBanner = "bannerId"
)
