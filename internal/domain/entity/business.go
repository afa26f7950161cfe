package entity

// Business owns orders, catalog entries, pricing rules and giftcards
type Business struct {
	Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Address string `gorm:"type:text" json:"address,omitempty"`
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}
