package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Tone
		wantErr bool
	}{
		{in: "Professional", want: ToneProfessional},
		{in: "professional", want: ToneProfessional},
		{in: "  FUNNY ", want: ToneFunny},
		{in: "", want: ToneProfessional},
		{in: "sarcastic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTone(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown tone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToneDirective(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "professional", ToneProfessional.Directive())
	assert.Equal(t, "funny", ToneFunny.Directive())
}
