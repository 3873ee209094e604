package shared

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// nameRegex allows letters and digits in words separated by single spaces.
var nameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

// Validator returns the process-wide validator with the domain's custom rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			return nameRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

func checkVar(domain, op, value, tag, message string) error {
	if strings.TrimSpace(value) == "" {
		return NewDomainError(domain, op, ErrEmptyValue, message)
	}
	if err := Validator().Var(value, tag); err != nil {
		return WrapError(domain, op, ErrInvalidFormat, message, err)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Name Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Name is the display name of a student or a module class.
type Name string

// NameConstraints describes what NewName accepts.
const NameConstraints = "Names should only contain alphanumeric characters and spaces, and it should not be blank"

// NewName creates a new Name with validation.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if err := checkVar("shared", "NewName", value, "required,name", NameConstraints); err != nil {
		return "", err
	}
	return Name(value), nil
}

// String returns the string representation.
func (n Name) String() string {
	return string(n)
}

// ContainsWord reports whether word matches one of the name's words, ignoring case.
func (n Name) ContainsWord(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	for _, w := range strings.Fields(string(n)) {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════
// Contact Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// Phone is a student's phone number.
type Phone string

// PhoneConstraints describes what NewPhone accepts.
const PhoneConstraints = "Phone numbers should only contain numbers, and it should be at least 3 digits long"

// NewPhone creates a new Phone with validation.
func NewPhone(value string) (Phone, error) {
	value = strings.TrimSpace(value)
	if err := checkVar("shared", "NewPhone", value, "required,number,min=3", PhoneConstraints); err != nil {
		return "", err
	}
	return Phone(value), nil
}

// String returns the string representation.
func (p Phone) String() string {
	return string(p)
}

// Email is a student's email address.
type Email string

// EmailConstraints describes what NewEmail accepts.
const EmailConstraints = "Emails should be of the format local-part@domain"

// NewEmail creates a new Email with validation.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(value)
	if err := checkVar("shared", "NewEmail", value, "required,email", EmailConstraints); err != nil {
		return "", err
	}
	return Email(value), nil
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// ═══════════════════════════════════════════════════════════════════════════
// Tag Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Tag is a free-form alphanumeric label attached to a student.
type Tag string

// TagConstraints describes what NewTag accepts.
const TagConstraints = "Tags names should be alphanumeric"

// NewTag creates a new Tag with validation.
func NewTag(value string) (Tag, error) {
	value = strings.TrimSpace(value)
	if err := checkVar("shared", "NewTag", value, "required,alphanum", TagConstraints); err != nil {
		return "", err
	}
	return Tag(value), nil
}

// String returns the string representation.
func (t Tag) String() string {
	return "[" + string(t) + "]"
}

// TagSet returns the tags sorted and without duplicates.
func TagSet(tags ...Tag) []Tag {
	seen := make(map[Tag]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// Index Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Index is a position in a displayed list. It is created from a 1-based user
// value and used zero-based internally. The zero Index means "not provided".
type Index struct {
	zeroBased int
	set       bool
}

// IndexFromOneBased creates an Index from a 1-based position.
func IndexFromOneBased(oneBased int) (Index, error) {
	if oneBased < 1 {
		return Index{}, NewDomainError("shared", "IndexFromOneBased", ErrInvalidIndex,
			fmt.Sprintf("index must be a positive integer, got %d", oneBased))
	}
	return Index{zeroBased: oneBased - 1, set: true}, nil
}

// IndexFromZeroBased creates an Index from a 0-based position.
func IndexFromZeroBased(zeroBased int) (Index, error) {
	if zeroBased < 0 {
		return Index{}, NewDomainError("shared", "IndexFromZeroBased", ErrInvalidIndex,
			fmt.Sprintf("index must not be negative, got %d", zeroBased))
	}
	return Index{zeroBased: zeroBased, set: true}, nil
}

// MustIndex is IndexFromOneBased for positions known to be valid. It panics otherwise.
func MustIndex(oneBased int) Index {
	i, err := IndexFromOneBased(oneBased)
	if err != nil {
		panic(err)
	}
	return i
}

// ZeroBased returns the 0-based position.
func (i Index) ZeroBased() int { return i.zeroBased }

// OneBased returns the 1-based position.
func (i Index) OneBased() int { return i.zeroBased + 1 }

// IsZero reports whether the index was not provided.
func (i Index) IsZero() bool { return !i.set }

// InBounds reports whether the index addresses an element of a list of length n.
func (i Index) InBounds(n int) bool { return i.set && i.zeroBased < n }

// String returns the 1-based representation.
func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
