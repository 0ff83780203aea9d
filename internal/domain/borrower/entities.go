package borrower

import "time"

type Borrower struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:100;not null;index:idx_borrowers_name" json:"name"`
	Email     string    `gorm:"size:191;not null;uniqueIndex:ux_borrowers_email" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_borrowers_created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Borrower) TableName() string { return "borrowers" }

// Filter enumerates the supported list predicates.
type Filter struct {
	NameContains string
}
