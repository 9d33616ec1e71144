package model

import (
	"evidentia/backend/common"
	cerr "evidentia/backend/common/errors"

	"github.com/burugo/thing"
)

// User represents an investigator account. Password is bcrypt-hashed before
// it ever reaches the table and never serialized in API responses.
type User struct {
	thing.BaseModel
	Email        string `json:"email" db:"email,unique"`
	Password     string `json:"-" db:"password"`
	FullName     string `json:"full_name" db:"full_name"`
	Organization string `json:"organization" db:"organization"`
	Role         int    `json:"role" db:"role"`
	Status       int    `json:"status" db:"status"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	return err
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, cerr.New(cerr.ErrEmptyID, "user id is empty")
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return nil, cerr.Wrap(err, cerr.ErrUserNotFound, "user not found")
	}
	return user, nil
}

func IsEmailAlreadyTaken(email string) bool {
	users, err := UserDB.Where("email = ?", email).Fetch(0, 1)
	return err == nil && len(users) > 0
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

// ValidateAndFill authenticates by email+password and, on success, replaces
// the receiver with the stored account. The error message deliberately does
// not distinguish a missing account from a wrong password.
func (user *User) ValidateAndFill() error {
	if user.Email == "" || user.Password == "" {
		return cerr.New(cerr.ErrEmptyCredentials, "email or password is empty")
	}
	users, err := UserDB.Where("email = ?", user.Email).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return cerr.New(cerr.ErrInvalidCredentials, "invalid email or password, or the account is disabled")
	}
	found := users[0]
	okay := common.ValidatePasswordAndHash(user.Password, found.Password)
	if !okay || found.Status != common.UserStatusEnabled {
		return cerr.New(cerr.ErrInvalidCredentials, "invalid email or password, or the account is disabled")
	}
	*user = *found
	return nil
}

// Sanitized returns a copy safe to hand to API responses.
func (user *User) Sanitized() *User {
	clean := *user
	clean.Password = ""
	return &clean
}
