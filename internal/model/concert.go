package model

// Concert is a single event as listed by the backend.
type Concert struct {
	Cno            int64   `json:"cno" validate:"gt=0"`
	Cname          string  `json:"cname" validate:"required"`
	Cplace         string  `json:"cplace"`
	Cprice         Amount  `json:"cprice"`
	Category       string  `json:"category"`
	Cdesc          string  `json:"cdesc,omitempty"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	UploadFileName *string `json:"uploadFileName"`
}

// ConcertSchedule is one performance slot of a concert.
type ConcertSchedule struct {
	Cno       int64  `json:"cno" validate:"gt=0"`
	StartTime string `json:"startTime" validate:"required"`
	Seats     int    `json:"seats" validate:"gte=0"`
	Remaining int    `json:"remaining" validate:"gte=0"`
}
