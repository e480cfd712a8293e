package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaces", in: "My Team", want: "my-team"},
		{name: "punctuation runs", in: "  Hello,   World!! ", want: "hello-world"},
		{name: "diacritics", in: "Crème Brûlée", want: "creme-brulee"},
		{name: "compatibility forms", in: "Ｆｕｌｌｗｉｄｔｈ ①", want: "fullwidth-1"},
		{name: "digits kept", in: "Team 42", want: "team-42"},
		{name: "already a slug", in: "ops-team", want: "ops-team"},
		{name: "underscores", in: "data_eng__team", want: "data-eng-team"},
		{name: "non latin only", in: "管理员", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
