package model

import "unicode"

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// Initials returns up to two upper-case initials of the display name.
func (u *User) Initials() string {
	var out []rune
	start := true
	for _, r := range u.Name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, unicode.ToUpper(r))
			start = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
