package model

import "time"

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleBlogger    Role = "blogger"
)

type CartStatus string

const (
	CartStatusPending  CartStatus = "pending"
	CartStatusApproved CartStatus = "approved"
	CartStatusRejected CartStatus = "rejected"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type User struct {
	ID        string `gorm:"primaryKey;size:128;not null"` // email
	Name      string `gorm:"size:128"`
	Password  string `gorm:"size:128"` // mock credential, stored as-is
	Role      Role   `gorm:"size:32;index;not null"`
	CreatedAt time.Time
}

type Instructor struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null"`
	BankAccount string `gorm:"size:64"` // card number receipts are paid to
	CreatedAt   time.Time
}

type Course struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:256;not null"`
	Price         string `gorm:"size:64;not null"` // formatted toman string
	DiscountPrice string `gorm:"size:64"`
	InstructorID  uint   `gorm:"index;not null"`
	CreatedAt     time.Time
}

type CartItem struct {
	ID       string `gorm:"primaryKey;size:36"` // uuid
	UserID   string `gorm:"size:128;index;not null"`
	CourseID uint   `gorm:"index;not null"`
	// title snapshot taken at add time, so the line stays nameable even if
	// the course later leaves the catalog
	CourseTitle string     `gorm:"size:256"`
	Quantity    int        `gorm:"not null"`
	Status      CartStatus `gorm:"size:16;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      string      `gorm:"size:128;index;not null"`
	TotalAmount string      `gorm:"size:64;not null"` // formatted toman string
	OrderDate   time.Time   `gorm:"not null"`
	Status      OrderStatus `gorm:"size:16;index;not null"`
	Items       []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID           uint        `gorm:"primaryKey"`
	OrderID      uint        `gorm:"index;not null"`
	CourseID     uint        `gorm:"index;not null"`
	CourseTitle  string      `gorm:"size:256;not null"`
	Price        string      `gorm:"size:64;not null"`
	PurchaseDate time.Time   `gorm:"not null"`
	Status       OrderStatus `gorm:"size:16;not null"`
	CreatedAt    time.Time
}

// Payment is one receipt submission per (order, instructor) group. An order
// spanning multiple instructors carries one Payment per instructor.
type Payment struct {
	ID               uint          `gorm:"primaryKey"`
	OrderID          uint          `gorm:"index;not null"`
	UserID           string        `gorm:"size:128;index;not null"`
	Amount           string        `gorm:"size:64;not null"` // formatted toman string
	ReceiptImage     string        `gorm:"size:512;not null"`
	InstructorID     uint          `gorm:"index;not null"`
	Status           PaymentStatus `gorm:"size:16;index;not null"`
	SubmissionDate   time.Time     `gorm:"not null"`
	VerificationDate *time.Time
	RejectionReason  string `gorm:"size:512"`
	RefundReason     string `gorm:"size:512"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Invoice struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null"`
	UserID    string    `gorm:"size:128;index;not null"`
	Amount    string    `gorm:"size:64;not null"`
	IssueDate time.Time `gorm:"not null"`
	// snapshot of the order items at issue time, stored inline
	ItemsJSON string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

type Enrollment struct {
	UserID    string    `gorm:"primaryKey;size:128;not null"`
	CourseID  uint      `gorm:"primaryKey;not null"`
	GrantedAt time.Time `gorm:"not null"`
}
