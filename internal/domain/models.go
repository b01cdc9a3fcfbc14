package domain

import "time"

// Priority is the three-level item priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Permission is the access level granted by a share.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// ValidPermission reports whether p is one of the known share permissions.
func ValidPermission(p Permission) bool {
	return p == PermissionView || p == PermissionEdit
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a server-side session row; the cookie carries only Token.
type Session struct {
	Token     string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type List struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Items      []Item          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Shares     []Share         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Frameworks []ListFramework `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ListID      uint      `gorm:"index;not null" json:"list_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `gorm:"size:8;default:medium" json:"priority"`
	DueDate     *string   `gorm:"size:10" json:"due_date"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tags          []Tag               `gorm:"many2many:item_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Comments      []Comment           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FrameworkData []ItemFrameworkData `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Tag struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"uniqueIndex:idx_tags_owner_name;not null" json:"owner_id"`
	Name    string `gorm:"uniqueIndex:idx_tags_owner_name;not null" json:"name"`
	Color   string `gorm:"size:7;default:#6366f1" json:"color"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"index;not null" json:"item_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Share struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ListID     uint       `gorm:"uniqueIndex:idx_shares_list_grantee;not null" json:"list_id"`
	GranteeID  uint       `gorm:"uniqueIndex:idx_shares_list_grantee;not null" json:"grantee_id"`
	Permission Permission `gorm:"size:8;default:view" json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Template struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	ItemsJSON   string    `gorm:"type:text;default:'[]'" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListFramework marks a framework key as attached to a list.
type ListFramework struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ListID       uint      `gorm:"uniqueIndex:idx_listfw_list_key;not null" json:"list_id"`
	FrameworkKey string    `gorm:"uniqueIndex:idx_listfw_list_key;size:32;not null" json:"framework_key"`
	CreatedAt    time.Time `json:"created_at"`
}

// ItemFrameworkData holds one item's small JSON payload for one framework.
// Rows survive framework detachment so re-attaching restores placements.
type ItemFrameworkData struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemID       uint      `gorm:"uniqueIndex:idx_itemfw_item_key;not null" json:"item_id"`
	FrameworkKey string    `gorm:"uniqueIndex:idx_itemfw_item_key;size:32;not null" json:"framework_key"`
	DataJSON     string    `gorm:"type:text;default:'{}'" json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName pins the name; the default pluralizer mangles "data".
func (ItemFrameworkData) TableName() string { return "item_framework_data" }

// AllModels lists every model for AutoMigrate, join tables excluded.
func AllModels() []any {
	return []any{
		&User{}, &Session{}, &List{}, &Item{}, &Tag{},
		&Comment{}, &Share{}, &Template{}, &ListFramework{}, &ItemFrameworkData{},
	}
}
