package post

import (
	"time"
	"unicode/utf8"

	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// titleChars is how much of the text String() shows.
const titleChars = 15

// Post is ordered newest first by default. PubDate is write-once.
type Post struct {
	ID       uuid.UUID    `gorm:"primaryKey;type:char(36)" json:"id"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time    `gorm:"column:pub_date;autoCreateTime;<-:create;index" json:"pub_date"`
	AuthorID uuid.UUID    `gorm:"type:char(36);not null;index" json:"author_id"`
	Author   user.User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uuid.UUID   `gorm:"type:char(36);index" json:"group_id,omitempty"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string       `gorm:"type:varchar(255)" json:"image,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (p Post) String() string {
	if utf8.RuneCountInString(p.Text) <= titleChars {
		return p.Text
	}
	return string([]rune(p.Text)[:titleChars])
}

// CanMutate reports whether actingUserID may edit or delete p.
func CanMutate(p *Post, actingUserID uuid.UUID) bool {
	if p == nil || actingUserID == uuid.Nil {
		return false
	}
	return p.AuthorID == actingUserID
}
