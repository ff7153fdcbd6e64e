package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes carried by AppError.Code.
const (
	CodeTooManyValues    = "TOO_MANY_VALUES"
	CodeMalformedNumeric = "MALFORMED_NUMERIC"
	CodeLineTooLong      = "LINE_TOO_LONG"
	CodeUnreadableFile   = "UNREADABLE_FILE"
	CodeInvalidFolder    = "INVALID_FOLDER"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeSinkWrite        = "SINK_WRITE_FAILED"
)

// Sentinels for errors.Is matching. They carry no message and are never
// returned directly.
var (
	ErrTooManyValues    = &AppError{Type: ErrTypeParsing, Code: CodeTooManyValues}
	ErrMalformedNumeric = &AppError{Type: ErrTypeParsing, Code: CodeMalformedNumeric}
	ErrLineTooLong      = &AppError{Type: ErrTypeParsing, Code: CodeLineTooLong}
	ErrUnreadableFile   = &AppError{Type: ErrTypeStorage, Code: CodeUnreadableFile}
	ErrInvalidFolder    = &AppError{Type: ErrTypeValidation, Code: CodeInvalidFolder}
	ErrInvalidArguments = &AppError{Type: ErrTypeValidation, Code: CodeInvalidArguments}
	ErrInvalidConfig    = &AppError{Type: ErrTypeConfig, Code: CodeInvalidConfig}
	ErrSinkWrite        = &AppError{Type: ErrTypeStorage, Code: CodeSinkWrite}

	// ErrUsage matches every validation-type error.
	ErrUsage = &AppError{Type: ErrTypeValidation}
)

// TooManyValuesError reports a data line carrying more values than maxTimes.
func TooManyValuesError(file string, line, values, maxTimes int) *AppError {
	return NewParsingError(CodeTooManyValues,
		fmt.Sprintf("number of values in %s is greater than maxTimes (%d > %d)", file, values, maxTimes), nil).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("values", values).
		WithContext("max_times", maxTimes)
}

// MalformedNumericError reports a token that could not be read as a number.
func MalformedNumericError(file string, line int, token string, cause error) *AppError {
	return NewParsingError(CodeMalformedNumeric,
		fmt.Sprintf("malformed number %q in %s line %d", token, file, line), cause).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("token", token)
}

// LineTooLongError reports a line longer than the reader accepts.
func LineTooLongError(file string, line, limit int, cause error) *AppError {
	return NewParsingError(CodeLineTooLong,
		fmt.Sprintf("line %d of %s exceeds %d bytes", line, file, limit), cause).
		WithContext("file", file).
		WithContext("line", line).
		WithContext("limit", limit)
}

// UnreadableFileError wraps an I/O failure on an input file.
func UnreadableFileError(file string, cause error) *AppError {
	return NewStorageError(CodeUnreadableFile, fmt.Sprintf("cannot read %s", file), cause).
		WithContext("file", file)
}

// InvalidFolderError reports a folder argument that is not a directory.
func InvalidFolderError(folder string) *AppError {
	return NewAppValidationError(CodeInvalidFolder, fmt.Sprintf("%s is not a valid directory", folder)).
		WithContext("folder", folder)
}

// InvalidArgumentsError reports a command-line usage error.
func InvalidArgumentsError(message string) *AppError {
	return NewAppValidationError(CodeInvalidArguments, message)
}

// SinkWriteError wraps a failure to write the report.
func SinkWriteError(cause error) *AppError {
	return NewStorageError(CodeSinkWrite, "failed to write report", cause)
}

// IsUsage reports whether err is a command-line usage error.
func IsUsage(err error) bool {
	return stderrors.Is(err, ErrUsage)
}

// Code returns the AppError code found in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
