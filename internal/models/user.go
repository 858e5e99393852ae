package models

// User is a signed-in commenter. It lives only as long as the viewer's session.
type User struct {
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email,omitempty" yaml:"email"`
	Avatar     string `json:"avatar,omitempty" yaml:"avatar"`
	Role       string `json:"role,omitempty" yaml:"role"`
	IsVerified bool   `json:"is_verified" yaml:"is_verified"`
}

// DefaultAvatar is assigned to users created by sign-in
const DefaultAvatar = "/placeholder.svg?height=40&width=40"

// DefaultRole is assigned to users created by sign-in
const DefaultRole = "Developer"
