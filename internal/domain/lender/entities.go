package lender

import "time"

type Lender struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:191;not null;uniqueIndex:ux_lenders_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:72;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Lender) TableName() string { return "lenders" }
