package request

type CreateSlotRequest struct {
	InstructorID string  `json:"instructor_id" validate:"required,uuid4"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Start        string  `json:"start" validate:"required,datetime=15:04"`
	End          string  `json:"end" validate:"required,datetime=15:04"`
	ClassType    string  `json:"class_type" validate:"required,oneof=driving_test driving_lesson ticket_class"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	TicketClass  string  `json:"ticket_class_id,omitempty" validate:"omitempty,uuid4"`
}
