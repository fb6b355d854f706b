package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIP(t *testing.T) {
	t.Run("Should return valid dotted quads unchanged", func(t *testing.T) {
		inputs := []string{
			"10.0.0.1",
			"0.0.0.0",
			"255.255.255.255",
			"192.168.1.254",
			"172.16.0.200",
			"10.0.0.249",
			"010.001.0.1",
		}
		for _, in := range inputs {
			got, ok := ValidateIP(in).Get()
			assert.True(t, ok, in)
			assert.Equal(t, in, got)
		}
	})

	t.Run("Should reject anything else", func(t *testing.T) {
		inputs := []string{
			"",
			"999.0.0.1",
			"10.0.0.256",
			"10.0.0",
			"10.0.0.1.1",
			"10.0.0.1/24",
			" 10.0.0.1",
			"10.0.0.1\n",
			"::1",
			"fe80::1",
			"host.example.com",
			"1000.0.0.1",
			"10.0.0.2000",
		}
		for _, in := range inputs {
			assert.False(t, ValidateIP(in).IsValid(), in)
		}
	})

	t.Run("Should reject non-text values", func(t *testing.T) {
		assert.False(t, validateIPValue(&Value{Text: "10.0.0.1", Kind: KindOther}).IsValid())
		assert.False(t, validateIPValue(nil).IsValid())
	})
}
