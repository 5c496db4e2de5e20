package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	IsStaff   bool      `gorm:"not null" json:"is_staff"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// CheckPassword 校验明文密码与存储的 bcrypt 哈希是否匹配。
func (u User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
// 账号已存在时只更新密码与邮箱，返回值表示是否新建。
func EnsureUser(gdb *gorm.DB, username, password, email string) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		user := User{
			Username: trimmedUser,
			Email:    strings.TrimSpace(email),
			Password: string(hashed),
			IsStaff:  true,
		}
		return true, gdb.Create(&user).Error
	}

	updates := map[string]any{
		"password": string(hashed),
		"is_staff": true,
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		updates["email"] = trimmed
	}
	return false, gdb.Model(&existing).Updates(updates).Error
}
