package model

type User struct {
	UserID   int    `gorm:"primaryKey" json:"user_id"`
	UserName string `gorm:"not null;type:varchar(50);unique" json:"user_name"`
	Password string `gorm:"not null;type:varchar(255)" json:"-"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
	BaseModel
}

func (User) TableName() string {
	return "users"
}
