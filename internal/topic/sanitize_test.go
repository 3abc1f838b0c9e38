package topic

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sanitizedPattern = regexp.MustCompile(`^ros2_[A-Za-z0-9_]*[0-9]+$`)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"path and punctuation", "robot/status!", "ros2_robot_status_629032112"},
		{"empty input", "", "ros2_0"},
		{"already safe", "abc", "ros2_abc" + strconv.FormatUint(Checksum("abc"), 10)},
		{"multi-byte character maps to one underscore", "héllo", "ros2_h_llo162660204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_Deterministic(t *testing.T) {
	for _, input := range []string{"", "robot/status!", "/make87/cam/left", strings.Repeat("ü", 300)} {
		assert.Equal(t, Sanitize(input), Sanitize(input))
	}
}

func TestSanitize_Shape(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"robot/status!",
		"/tf_static",
		"spaces and\ttabs\n",
		"日本語",
		strings.Repeat("x", MaxLength),
		strings.Repeat("/", 5000),
	}

	for _, input := range inputs {
		got := Sanitize(input)
		assert.LessOrEqual(t, len(got), MaxLength, "input %q", input)
		assert.True(t, strings.HasPrefix(got, Prefix), "input %q", input)
		assert.Regexp(t, sanitizedPattern, got)
		assert.True(t, strings.HasSuffix(got, strconv.FormatUint(Checksum(input), 10)), "checksum must never be truncated")
	}
}

func TestSanitize_TruncatesBodyOnly(t *testing.T) {
	input := strings.Repeat("x", 1000)
	checksum := strconv.FormatUint(Checksum(input), 10)
	require.Len(t, checksum, 9)

	got := Sanitize(input)

	assert.Len(t, got, MaxLength)
	body := strings.TrimSuffix(strings.TrimPrefix(got, Prefix), checksum)
	assert.Equal(t, strings.Repeat("x", MaxLength-len(Prefix)-len(checksum)), body)
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint64(0), Checksum(""))
	assert.Equal(t, uint64('a'), Checksum("a"))
	assert.Equal(t, uint64('a')*31+uint64('b'), Checksum("ab"))
	assert.Equal(t, uint64(629032112), Checksum("robot/status!"))
	assert.Less(t, Checksum(strings.Repeat("\xff", 10000)), uint64(checksumModulus))
}
