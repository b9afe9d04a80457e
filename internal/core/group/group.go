package group

import (
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Group is a topical collection posts may optionally belong to.
type Group struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (g Group) String() string {
	return g.Title
}
