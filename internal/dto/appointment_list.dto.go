package dto

type AppointmentListDTO struct {
	ID            uint   `json:"id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	ClientName    string `json:"client_name"`
	ProductName   string `json:"product_name"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
