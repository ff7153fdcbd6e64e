package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "code without cause",
			err:  InvalidArgumentsError("too many arguments"),
			want: "[INVALID_ARGUMENTS] too many arguments",
		},
		{
			name: "code with cause",
			err:  UnreadableFileError("a.txt", fs.ErrPermission),
			want: "[UNREADABLE_FILE] cannot read a.txt: permission denied",
		},
		{
			name: "type only",
			err:  &AppError{Type: ErrTypeValidation, Message: "bad"},
			want: "[VALIDATION] bad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppErrorIs(t *testing.T) {
	err := TooManyValuesError("a.txt", 3, 5, 4)
	wrapped := fmt.Errorf("processing: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrTooManyValues))
	assert.False(t, stderrors.Is(wrapped, ErrMalformedNumeric))
	assert.False(t, stderrors.Is(wrapped, ErrUsage), "parsing errors are not usage errors")
	assert.False(t, stderrors.Is(wrapped, stderrors.New("other")))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := UnreadableFileError("a.txt", fs.ErrNotExist)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.True(t, stderrors.Is(err, ErrUnreadableFile))

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("wrap: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestErrorContext(t *testing.T) {
	err := TooManyValuesError("a.txt", 3, 5, 4)
	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Equal(t, "a.txt", err.Context["file"])
	assert.Equal(t, 3, err.Context["line"])
	assert.Equal(t, 5, err.Context["values"])
	assert.Equal(t, 4, err.Context["max_times"])
	assert.Contains(t, err.Message, "(5 > 4)")

	cause := stderrors.New("invalid syntax")
	num := MalformedNumericError("b.txt", 7, "x1", cause)
	assert.Equal(t, "x1", num.Context["token"])
	assert.ErrorIs(t, num, cause)
}

func TestLineTooLongError(t *testing.T) {
	err := LineTooLongError("a.txt", 4, 1024, stderrors.New("token too long"))
	assert.True(t, stderrors.Is(err, ErrLineTooLong))
	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Equal(t, 4, err.Context["line"])
	assert.Equal(t, "[LINE_TOO_LONG] line 4 of a.txt exceeds 1024 bytes: token too long", err.Error())
}

func TestIsUsage(t *testing.T) {
	assert.True(t, IsUsage(InvalidFolderError("/nowhere")))
	assert.True(t, IsUsage(fmt.Errorf("run: %w", InvalidArgumentsError("x"))))
	assert.False(t, IsUsage(NewConfigError("bad config", nil)))
	assert.False(t, IsUsage(SinkWriteError(stderrors.New("disk full"))))
	assert.False(t, IsUsage(nil))
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeSinkWrite, Code(fmt.Errorf("x: %w", SinkWriteError(nil))))
	assert.Equal(t, CodeInvalidConfig, Code(NewConfigError("bad", nil)))
	assert.Equal(t, "", Code(stderrors.New("plain")))
	assert.Equal(t, "", Code(nil))
}
