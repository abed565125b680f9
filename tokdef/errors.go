package tokdef

import (
	"github.com/lexnfa/lexnfa/errors"
)

func malformedHeaderError(pos errors.SourcePos, line string) *errors.Error {
	return errors.FormatPos(pos, errors.MalformedHeaderError,
		"malformed line, each line must define a non-terminal: %s", line)
}

func emptyNameError(pos errors.SourcePos) *errors.Error {
	return errors.FormatPos(pos, errors.EmptyNameError, "empty non-terminal name")
}

func missingDefinitionError(pos errors.SourcePos) *errors.Error {
	return errors.FormatPos(pos, errors.MissingDefinitionError, "missing definition of a non-terminal")
}

func redefinitionError(pos errors.SourcePos, name string) *errors.Error {
	return errors.FormatPos(pos, errors.RedefinitionError, "re-definition of non-terminal %q", name)
}

func danglingOperatorError(pos errors.SourcePos) *errors.Error {
	return errors.FormatPos(pos, errors.DanglingOperatorError, "an operator without an operand")
}

func incompleteEscapeError(pos errors.SourcePos) *errors.Error {
	return errors.FormatPos(pos, errors.IncompleteEscapeError,
		"incomplete escape sequence at the end of an operand")
}
