package validator

import (
	"net/mail"
	"strings"

	"go.uber.org/zap"
)

const (
	minLength = 3
	maxLength = 254
)

// Mail is a pragmatic syntactic validator built on net/mail
type Mail struct {
	logger *zap.Logger
}

// New creates a new validator
func New(logger *zap.Logger) *Mail {
	return &Mail{logger: logger}
}

// Valid checks that email is a bare addr-spec with exactly one @
func (v *Mail) Valid(email string) bool {
	length := len(email)
	// email cannot be too short or too long
	if length < minLength || length > maxLength {
		v.log("length", email, nil)
		return false
	}

	if strings.Count(email, "@") != 1 {
		v.log("at sign count", email, nil)
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		v.log("syntax", email, err)
		return false
	}

	// display names and quoted local parts are rewritten by the parser
	if addr.Name != "" || addr.Address != email {
		v.log("not a bare address", email, nil)
		return false
	}

	at := strings.LastIndex(email, "@")
	if strings.ContainsAny(email[at+1:], "[]") {
		v.log("domain literal", email, nil)
		return false
	}

	return true
}

func (v *Mail) log(reason, email string, err error) {
	if v.logger == nil {
		return
	}
	fields := []zap.Field{zap.String("email", email), zap.String("reason", reason)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	v.logger.Debug("Email invalid", fields...)
}
