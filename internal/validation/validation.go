// Package validation holds the DTO validation failure type shared by the
// transport-facing feature packages. Handlers map it to a 400 response.
package validation

type Error struct {
	Msg string
}

func (e Error) Error() string { return e.Msg }
