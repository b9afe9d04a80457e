package follower

import (
	"time"

	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: User follows Author.
// The unique pair and the self-follow check are enforced by the schema too.
type Follow struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_author_user_following;check:author_cannot_subscribe,user_id <> author_id"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:unique_author_user_following;index"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
