package profile

import "time"

// Threshold fields are optional on create; missing ones take the defaults.
type CreateProfileRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=128"`
	DirectionUp     *float64 `json:"direction_up" validate:"omitempty,gte=0,lte=1"`
	DirectionDown   *float64 `json:"direction_down" validate:"omitempty,gte=0,lte=1"`
	DirectionLeft   *float64 `json:"direction_left" validate:"omitempty,gte=0,lte=1"`
	DirectionRight  *float64 `json:"direction_right" validate:"omitempty,gte=0,lte=1"`
	BlinkThreshold  *float64 `json:"blink_threshold" validate:"omitempty,gt=0,lte=100"`
	MinHoldMs       *int64   `json:"min_hold_ms" validate:"omitempty,gte=0,lte=10000"`
	FrameIntervalMs *float64 `json:"frame_interval_ms" validate:"omitempty,gt=0,lte=1000"`
}

type UpdateProfileRequest struct {
	Name            string   `json:"name" validate:"omitempty,min=2,max=128"`
	DirectionUp     *float64 `json:"direction_up" validate:"omitempty,gte=0,lte=1"`
	DirectionDown   *float64 `json:"direction_down" validate:"omitempty,gte=0,lte=1"`
	DirectionLeft   *float64 `json:"direction_left" validate:"omitempty,gte=0,lte=1"`
	DirectionRight  *float64 `json:"direction_right" validate:"omitempty,gte=0,lte=1"`
	BlinkThreshold  *float64 `json:"blink_threshold" validate:"omitempty,gt=0,lte=100"`
	MinHoldMs       *int64   `json:"min_hold_ms" validate:"omitempty,gte=0,lte=10000"`
	FrameIntervalMs *float64 `json:"frame_interval_ms" validate:"omitempty,gt=0,lte=1000"`
}

type ProfileResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DirectionUp     float64   `json:"direction_up"`
	DirectionDown   float64   `json:"direction_down"`
	DirectionLeft   float64   `json:"direction_left"`
	DirectionRight  float64   `json:"direction_right"`
	BlinkThreshold  float64   `json:"blink_threshold"`
	MinHoldMs       int64     `json:"min_hold_ms"`
	FrameIntervalMs float64   `json:"frame_interval_ms"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
