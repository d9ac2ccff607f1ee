package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{input: "english", want: English},
		{input: " Spanish ", want: Spanish},
		{input: "ITALIAN", want: Italian},
		{input: "portuguese", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLanguage)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguage_Label(t *testing.T) {
	assert.Equal(t, "German", German.Label())
	assert.Equal(t, "klingon", Language("klingon").Label())
	assert.Len(t, Languages(), 5)
	assert.Equal(t, English, DefaultLanguage)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "água", NormalizeText("  ÁGUA "))
	assert.Equal(t, keyOf("Casa", English), keyOf("casa ", English))
	assert.NotEqual(t, keyOf("casa", English), keyOf("casa", Spanish))
}
