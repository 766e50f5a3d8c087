package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{"yes", "Yes"},
		{"publicProtection", "Public protection"},
		{"risk_management", "Risk management"},
		{"move-on", "Move on"},
		{"other", "Other"},
		{"", ""},
		{"alreadySpaced value", "Already spaced value"},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			assert.Equal(t, tc.want, Humanize(tc.token))
		})
	}
}

func TestJoinListPreservesOrder(t *testing.T) {
	assert.Equal(t,
		"Public protection, Resettlement, Other",
		JoinList([]string{"publicProtection", "resettlement", "other"}),
	)
	assert.Equal(t, "", JoinList(nil))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo("yes"))
	assert.Equal(t, "No", YesNo("no"))
	assert.Equal(t, "Not applicable", YesNo("not_applicable"))
}
