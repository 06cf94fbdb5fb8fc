package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2020-01-01":               "Jan 2020",
		"2020-01-01T00:00:00.000Z": "Jan 2020",
		"2021-11":                  "Nov 2021",
		"March 2019":               "Mar 2019",
		"2018":                     "2018",
		"  ":                       "",
		"someday":                  "someday",
		" 13/45/2020 ":             "13/45/2020",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), in)
	}
}

func TestFormatRange_CurrentIsPresent(t *testing.T) {
	assert.Equal(t, "Jan 2020 - Present", FormatRange("2020-01-01", "", true))
	assert.Equal(t, "Jan 2020 - Present", FormatRange("2020-01-01", "2022-05-01", true))
	assert.True(t, strings.HasSuffix(FormatRange("garbage", "2019-01", true), Present))
}

func TestFormatRange_Closed(t *testing.T) {
	assert.Equal(t, "Jun 2020 - Dec 2021", FormatRange("2020-06-01", "2021-12-31", false))
}

func TestFormatRange_NoEnd(t *testing.T) {
	assert.Equal(t, "Jun 2020 - ", FormatRange("2020-06-01", "", false))
}

func TestFormatRange_NoStart(t *testing.T) {
	assert.Equal(t, "Dec 2021", FormatRange("", "2021-12-31", false))
	assert.Equal(t, "Present", FormatRange("", "", true))
	assert.Equal(t, "", FormatRange("", "", false))
}

func TestFormatRange_InvertedRendersAsGiven(t *testing.T) {
	assert.Equal(t, "Jan 2023 - Jan 2019", FormatRange("2023-01-01", "2019-01-01", false))
}
