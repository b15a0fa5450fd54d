package userservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/recipehub/internal/common"
)

var (
	EmailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	UsernameRX = regexp.MustCompile("^[a-zA-Z0-9_]+$")
)

func validateName(v *common.Validator, name string) {
	v.Check(strings.TrimSpace(name) != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 100), "name", "must not be more than 100 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

// bcrypt only looks at the first 72 bytes, so the limit is in bytes.
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 characters long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}

func validateUsername(v *common.Validator, username string) {
	if username == "" {
		return
	}

	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters, numbers and underscores")
}

func validateProfile(v *common.Validator, in ProfileInput) {
	if in.Name != nil {
		validateName(v, *in.Name)
	}

	if in.Username != nil {
		validateUsername(v, *in.Username)
	}

	if in.Bio != nil {
		v.Check(v.CheckStringLength(*in.Bio, 0, 500), "bio", "must not be more than 500 characters long")
	}

	if in.Avatar != nil && *in.Avatar != "" {
		v.Check(common.ValidURL(*in.Avatar), "avatar", "must be a valid URL")
	}
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
