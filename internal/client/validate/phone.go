package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	localPhonePattern         = regexp.MustCompile(`^[0-9]{10}$`)
	internationalPhonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

	errPhoneShape = errors.New("Enter a 10-digit number or an international number such as +919876543210")
)

// Phone accepts a 10-digit local number or an E.164 international number.
func Phone(value string) error {
	return phone(value)
}

func phone(value interface{}) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)

	if localPhonePattern.MatchString(s) {
		return nil
	}
	if !internationalPhonePattern.MatchString(s) {
		return errPhoneShape
	}

	num, err := phonenumbers.Parse(s, "")
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return errPhoneShape
	}
	return nil
}

func optionalPhone(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return phone(s)
}
