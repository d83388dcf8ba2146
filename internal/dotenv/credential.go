package dotenv

import (
	"fmt"
	"strings"
)

// CredentialState classifies the credential entry of a configuration file.
type CredentialState int

const (
	CredentialMissing CredentialState = iota
	CredentialPlaceholder
	CredentialSet
)

func (s CredentialState) String() string {
	switch s {
	case CredentialMissing:
		return "missing"
	case CredentialPlaceholder:
		return "placeholder"
	case CredentialSet:
		return "set"
	default:
		return fmt.Sprintf("CredentialState(%d)", int(s))
	}
}

// IsPlaceholder reports whether value looks like an unedited template value:
// empty, equal to the configured placeholder, "<...>" or "your...here".
func IsPlaceholder(value, placeholder string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return true
	}
	if placeholder != "" && strings.EqualFold(v, strings.TrimSpace(placeholder)) {
		return true
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "your") && strings.HasSuffix(lower, "here")
}

// CheckCredential reads the file at path and classifies the value of key.
func CheckCredential(path, key, placeholder string) (CredentialState, error) {
	entries, err := ParseFile(path)
	if err != nil {
		return CredentialMissing, err
	}
	value, found := Lookup(entries, key)
	if !found {
		return CredentialMissing, nil
	}
	if IsPlaceholder(value, placeholder) {
		return CredentialPlaceholder, nil
	}
	return CredentialSet, nil
}
