package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Date         time.Time `json:"date"`
	LocalTime    string    `json:"localTime"`
	Status       string    `json:"status"`
	EmployeeID   uint      `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	ServiceID    uint      `json:"serviceId"`
	ServiceName  string    `json:"serviceName"`
	ClientID     uint      `json:"clientId"`
	ClientName   string    `json:"clientName"`
	ClientPhone  string    `json:"clientPhone"`
	ClientEmail  string    `json:"clientEmail"`
	Notes        string    `json:"notes"`
}
