// Package model holds the GORM records backing the domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:255"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Account represents an account record in the database.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	User           User            `gorm:"constraint:OnDelete:CASCADE"`
	Name           string          `gorm:"not null;size:255"`
	Type           string          `gorm:"type:varchar(20);not null;default:'checking'"`
	Balance        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Institution    *string         `gorm:"size:255"`
	Color          string          `gorm:"type:varchar(9);not null;default:'#2563eb'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Transactions   []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Category represents a category record in the database.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"not null;size:255"`
	Description *string
	Color       string `gorm:"type:varchar(9);not null;default:'#64748b'"`
	Kind        string `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string { return "categories" }

// Transaction represents a transaction record in the database.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CategoryID  *uuid.UUID
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL"`
	Description string          `gorm:"not null;size:255"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Kind        string          `gorm:"type:varchar(10);not null"`
	Date        time.Time       `gorm:"index;not null"`
	ReceiptURL  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Goal represents a savings goal record in the database.
type Goal struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	User          User      `gorm:"constraint:OnDelete:CASCADE"`
	Title         string    `gorm:"not null;size:255"`
	Description   *string
	TargetAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	StartDate     time.Time       `gorm:"not null"`
	EndDate       *time.Time
	Color         string `gorm:"type:varchar(9);not null;default:'#16a34a'"`
	Completed     bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the Goal model.
func (Goal) TableName() string { return "goals" }

// Bill represents an account payable/receivable record in the database.
type Bill struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	User         User      `gorm:"constraint:OnDelete:CASCADE"`
	Kind         string    `gorm:"type:varchar(10);not null"`
	Counterparty string    `gorm:"not null;size:255"`
	Description  *string
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDate      time.Time       `gorm:"index;not null"`
	Status       string          `gorm:"type:varchar(10);not null;default:'pending'"`
	CategoryID   *uuid.UUID
	Category     *Category `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Bill model.
func (Bill) TableName() string { return "bills" }
