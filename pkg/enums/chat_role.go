package enums

import "fmt"

// ChatRole labels a turn in the assistant conversation history.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

var validChatRoles = []ChatRole{
	ChatRoleUser,
	ChatRoleModel,
}

// String implements fmt.Stringer.
func (r ChatRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ChatRole.
func (r ChatRole) IsValid() bool {
	for _, candidate := range validChatRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseChatRole converts raw input into a ChatRole.
func ParseChatRole(value string) (ChatRole, error) {
	for _, candidate := range validChatRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chat role %q", value)
}
