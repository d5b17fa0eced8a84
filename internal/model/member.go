package model

// User is the account summary the backend returns on login.
type User struct {
	UID          *int64 `json:"uid"`
	UserID       string `json:"userId" validate:"required"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	UserAddress  string `json:"userAddress"`
	UserPhoneNum string `json:"userPhoneNum"`
	Role         string `json:"role,omitempty"`
}

// IsAdmin reports whether the user may use the product editor.
func (u User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

// LoginResult is returned by the login endpoint.
type LoginResult struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// SignupRequest is the payload of the registration endpoint.
type SignupRequest struct {
	UserID          string `json:"userId"`
	UserPw          string `json:"userPw"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	UserEmailID     string `json:"userEmailId"`
	UserEmailDomain string `json:"userEmailDomain"`
	UserAddress     string `json:"userAddress"`
	UserPhoneNum    string `json:"userPhoneNum"`
}

// Result is the generic success envelope of member endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Point is one entry of a member's point history.
type Point struct {
	PointID     int64  `json:"pointId"`
	EventType   string `json:"eventType"`
	IssueDate   string `json:"issueDate"`
	PointAmount int    `json:"pointAmount"`
}

// Review is one review written by a member.
type Review struct {
	PreviewNo    int64   `json:"previewNo"`
	Pno          int64   `json:"pno"`
	Pname        string  `json:"pname"`
	DueDate      string  `json:"dueDate"`
	ReviewRating float64 `json:"reviewRating" validate:"gte=0,lte=5"`
	ReviewText   string  `json:"reviewText"`
}

// Profile is the payload of the member profile endpoint.
type Profile struct {
	User
	ProfileImage string   `json:"profileImagePath"`
	TotalPoint   int      `json:"totalPoint"`
	Points       []Point  `json:"points" validate:"dive"`
	Reviews      []Review `json:"reviews" validate:"dive"`
}
