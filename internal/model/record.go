package model

import "strings"

// DefaultPort is the SSH port assumed when a record leaves the port blank.
// The default is applied when the field is read, not at load time, so the
// inventory file round-trips unchanged.
const DefaultPort = "22"

// Record is one normalized inventory entry identifying a remote host and its
// connection metadata. Records are built once at load time and never mutated.
type Record struct {
	Name        string
	Address     string
	User        string
	Credential  string
	Description string
	Port        string // stored literally; blank means DefaultPort
}

// Field names accepted by Record.Field.
const (
	FieldAddress     = "address"
	FieldUser        = "user"
	FieldCredential  = "credential"
	FieldDescription = "description"
	FieldPort        = "port"
)

// Field projects a record attribute by semantic name. Unset fields come back
// as the empty string, except "port" which resolves to DefaultPort when blank.
// Unknown names also return the empty string.
func (r Record) Field(name string) string {
	switch name {
	case FieldAddress:
		return r.Address
	case FieldUser:
		return r.User
	case FieldCredential:
		return r.Credential
	case FieldDescription:
		return r.Description
	case FieldPort:
		return r.EffectivePort()
	}
	return ""
}

// EffectivePort returns the stored port, or DefaultPort when it is blank.
func (r Record) EffectivePort() string {
	if strings.TrimSpace(r.Port) == "" {
		return DefaultPort
	}
	return r.Port
}

// Target renders the user@address destination passed to the ssh client.
func (r Record) Target() string {
	if r.User == "" {
		return r.Address
	}
	return r.User + "@" + r.Address
}
