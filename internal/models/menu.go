package models

// Menu 权限项，Type 为 0 表示路由权限，其余为按钮权限
type Menu struct {
	BaseModel
	ID          int64  `json:"id" gorm:"column:id;uniqueIndex;not null"`
	ParentID    int64  `json:"parentId" gorm:"column:parent_id;index"`
	Title       string `json:"title" gorm:"column:title;size:50"`
	Path        string `json:"path" gorm:"column:path;size:255"`
	Type        int    `json:"type" gorm:"column:type;not null"`
	Permissions string `json:"permissions" gorm:"column:permissions;size:100"`
	Sort        int    `json:"sort" gorm:"column:sort"`
}

func (m *Menu) TableName() string {
	return "menus"
}

// 权限类型
const (
	MenuTypeRoute  = 0
	MenuTypeButton = 1
)

// IsButton 是否为按钮权限
func (m *Menu) IsButton() bool {
	return m.Type != MenuTypeRoute
}
