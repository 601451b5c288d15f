package dto

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}

type CreateBookingRequest struct {
	RoomID    string `json:"room_id" binding:"required,uuid"`
	UserID    string `json:"user_id" binding:"required,uuid"`
	Subject   string `json:"subject" binding:"max=200"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type RescheduleBookingRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
