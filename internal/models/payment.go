package models

type Payment struct {
	PaymentID   uint    `json:"payment_id" gorm:"primaryKey;column:payment_id"`
	StudentID   uint    `json:"student_id" gorm:"not null;index"`
	ServiceType string  `json:"service_type" gorm:"size:100;not null;index"`
	Amount      float64 `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentDate string  `json:"payment_date" gorm:"type:date;not null;index"`
	PaymentTime string  `json:"payment_time" gorm:"type:time;not null"`
}

func (Payment) TableName() string {
	return "payment"
}
