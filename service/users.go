package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/validator"
	"github.com/lightbnb/lightbnb/repository"
)

type users interface {
	RegisterUser(name string, email string, password string) (*data.User, error)
	ShowUser(userID int64) (*data.User, error)
	ShowUserByEmail(email string) (*data.User, error)
}

// RegisterUser service registers a new user.
func (s *service) RegisterUser(name string, email string, password string) (*data.User, error) {
	v := validator.New()
	data.ValidatePasswordPlaintext(v, password)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	user := &data.User{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.AddUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	if s.mailer != nil {
		s.background(func() {
			data := map[string]string{
				"userName": strings.Split(user.Name, " ")[0],
				"userID":   strconv.FormatInt(user.ID, 10),
			}
			err := s.mailer.Send(user.Email, "user_welcome.tmpl", data)
			if err != nil {
				s.logger.PrintError(err, map[string]string{"user_id": strconv.FormatInt(user.ID, 10)})
			}
		})
	}
	return user, nil
}

// ShowUser service shows the details of a specific user.
func (s *service) ShowUser(userID int64) (*data.User, error) {
	user, err := s.repo.GetUserWithID(userID)
	return s.userLookup(user, err, map[string]string{"user_id": strconv.FormatInt(userID, 10)})
}

// ShowUserByEmail service shows the details of the user with an email address.
func (s *service) ShowUserByEmail(email string) (*data.User, error) {
	user, err := s.repo.GetUserWithEmail(strings.TrimSpace(email))
	return s.userLookup(user, err, map[string]string{"email": email})
}

// userLookup maps the outcome of a user lookup. A missing user is always
// ErrRecordNotFound. Other failures are returned as-is, unless lookup errors are
// suppressed by config, in which case they are logged and reported as
// ErrRecordNotFound.
func (s *service) userLookup(user *data.User, err error, properties map[string]string) (*data.User, error) {
	if err == nil {
		return user, nil
	}
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		return nil, ErrRecordNotFound
	case s.config.Users.SuppressLookupErrors:
		s.logger.PrintError(err, properties)
		return nil, ErrRecordNotFound
	default:
		return nil, err
	}
}
