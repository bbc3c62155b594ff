package rest

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
)

const maxFieldLength = 256

type credentialsRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.Length(1, maxFieldLength)),
		validation.Field(&r.Password, validation.Length(0, maxFieldLength)),
	)
}

// loginRequest accepts JSON and the OAuth2 password form; the name may be
// sent as user_name or username.
type loginRequest struct {
	UserName string `json:"user_name" form:"user_name"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r loginRequest) name() string {
	if r.UserName != "" {
		return r.UserName
	}
	return r.Username
}

type postRequest struct {
	Contents string `json:"contents"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Contents, validation.Length(0, maxFieldLength)),
	)
}

// decode binds the JSON body into v and runs its validation rules.
func decode(c *gin.Context, v validation.Validatable) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrValidation, name)
	}
	return id, nil
}
