package models

// Banner 轮播图
type Banner struct {
	BaseModel
	ID         int64  `json:"id" gorm:"column:id;uniqueIndex;not null"`
	Title      string `json:"title" gorm:"column:title;size:100;not null"`
	ImageURL   string `json:"imageUrl" gorm:"column:image_url;size:500;not null"`
	LinkURL    string `json:"linkUrl" gorm:"column:link_url;size:500"`
	Sort       int    `json:"sort" gorm:"column:sort"`
	IsPublish  int    `json:"isPublish" gorm:"column:is_publish;not null"`
	IsTop      int    `json:"isTop" gorm:"column:is_top;not null"`
	CreateBy   string `json:"createBy" gorm:"column:create_by;size:50"`
	CreateTime string `json:"createTime" gorm:"column:create_time;size:20;index"`
}

func (b *Banner) TableName() string {
	return "banners"
}
