/*------------------------------------------------------------------------------
* errors.go : error taxonomy of the gnss-ir preparation library
*
* notes  : DomainError and ParseError are failures of a single call and carry
*          the offending input. ErrNotFound and ErrEmpty report absence of data
*          and must be branched on with errors.Is, they are not failures of the
*          input.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found") /* no position in header or table */
	ErrEmpty    = errors.New("no data")   /* no matching observation files */
)

/* mathematically undefined input to a conversion */
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

/* malformed content of a header line, name, option or station file */
type ParseError struct {
	Src  string /* file or input description */
	Line int    /* line number (0: n/a) */
	Text string /* offending text */
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s (%q)", e.Src, e.Line, e.Msg, e.Text)
	}
	return fmt.Sprintf("%s: %s (%q)", e.Src, e.Msg, e.Text)
}

/* invalid gnss-ir option value */
type OptError struct {
	Name string
	Msg  string
}

func (e *OptError) Error() string {
	return fmt.Sprintf("gnssir option %s: %s", e.Name, e.Msg)
}
