package automation_test

import (
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/stretchr/testify/assert"
)

func TestVariants(t *testing.T) {
	tests := []struct {
		marker string
		want   []string
	}{
		{"###", []string{"###", "＃＃＃", "# # #", "＃ ＃ ＃"}},
		{"&&&", []string{"&&&", "＆＆＆", "& & &", "＆ ＆ ＆"}},
		{"@", []string{"@", "＠"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			assert.Equal(t, tt.want, automation.Variants(tt.marker))
		})
	}
}
